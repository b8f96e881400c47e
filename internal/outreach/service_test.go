package outreach

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smart-email-sender/internal/compose"
	"smart-email-sender/internal/mailer"
	"smart-email-sender/internal/shared/telemetry"
)

func init() {
	telemetry.SetOutput(&bytes.Buffer{})
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func TestSendInquiryComposesAndSends(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.To == "hr@acme.test" &&
			msg.Subject == "Job Opening Inquiry" &&
			strings.Contains(msg.HTML, "Dear Ms. Rivera,") &&
			strings.Contains(msg.HTML, "opportunities at Acme") &&
			strings.Contains(msg.HTML, "I am interested.")
	})).Return(nil).Once()

	svc := &Service{Composer: compose.New(), Sender: sender}
	err := svc.SendInquiry(context.Background(), InquiryRequest{
		To:                "hr@acme.test",
		CompanyName:       "Acme",
		HiringManagerName: "Ms. Rivera",
		Body:              "I am interested.",
	})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSendApplicationSubject(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.Subject == "Job Application for -- Backend Engineer" &&
			strings.Contains(msg.HTML, "Application for the Backend Engineer position")
	})).Return(nil).Once()

	svc := &Service{Composer: compose.New(), Sender: sender}
	err := svc.SendApplication(context.Background(), ApplicationRequest{
		To:       "hr@acme.test",
		JobTitle: "Backend Engineer",
		Body:     "Body",
	})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSendKeepsUnfilledPlaceholder(t *testing.T) {
	fsys := fstest.MapFS{
		compose.TemplateApplication: {Data: []byte("<h1>{{job_title}}</h1><p>{{body_content}}</p><footer>{{signature}}</footer>")},
	}
	var sent mailer.Message
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(mailer.Message)
	}).Return(nil)

	svc := &Service{Composer: compose.NewFromFS(fsys), Sender: sender}
	require.NoError(t, svc.SendApplication(context.Background(), ApplicationRequest{
		To: "hr@acme.test", JobTitle: "SRE", Body: "Hi",
	}))

	assert.Equal(t, "<h1>SRE</h1><p>Hi</p><footer>{{signature}}</footer>", sent.HTML)
}

func TestSendInquiryCarriesPlainText(t *testing.T) {
	var sent mailer.Message
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(mailer.Message)
	}).Return(nil)

	svc := &Service{Composer: compose.New(), Sender: sender}
	require.NoError(t, svc.SendInquiry(context.Background(), InquiryRequest{
		To: "hr@acme.test", CompanyName: "Acme", HiringManagerName: "Sam",
		Body: "<p>Hi</p>", Text: "Hi",
	}))

	assert.Equal(t, "Hi", sent.Text)
	assert.Contains(t, sent.HTML, "<p>Hi</p>")
}

func TestSendRejectsBlankFields(t *testing.T) {
	sender := &mockSender{}
	svc := &Service{Composer: compose.New(), Sender: sender}

	err := svc.SendInquiry(context.Background(), InquiryRequest{To: "hr@acme.test", CompanyName: "Acme"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "body, hiringManagerName required")
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendPropagatesTransportError(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.Join(mailer.ErrTransport, errors.New("relay down")))

	svc := &Service{Composer: compose.New(), Sender: sender}
	err := svc.SendApplication(context.Background(), ApplicationRequest{To: "hr@acme.test", JobTitle: "SRE", Body: "x"})
	assert.ErrorIs(t, err, mailer.ErrTransport)
}

func newSendRouter(sender mailer.Sender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(&Service{Composer: compose.New(), Sender: sender}).RegisterRoutes(r.Group("/api/resume"))
	return r
}

func TestHandlerSendEmailAcceptsQueryAndForm(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Twice()
	router := newSendRouter(sender)

	q := url.Values{
		"to":                {"hr@acme.test"},
		"companyName":       {"Acme"},
		"hiringManagerName": {"Sam"},
		"body":              {"Hello"},
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/resume/send/email?"+q.Encode(), nil))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/resume/send/email", strings.NewReader(q.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "Email sent successfully!")

	sender.AssertExpectations(t)
}

func TestHandlerSendJobEmailValidation(t *testing.T) {
	sender := &mockSender{}
	router := newSendRouter(sender)

	q := url.Values{"to": {"not-an-email"}, "body": {"Hello"}}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/resume/send_job/email?"+q.Encode(), nil))

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), `"field":"to"`)
	assert.Contains(t, resp.Body.String(), `"field":"jobTitle"`)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestHandlerSendJobEmailTransportFailure(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.Join(mailer.ErrTransport, errors.New("535 auth failed")))
	router := newSendRouter(sender)

	q := url.Values{"to": {"hr@acme.test"}, "jobTitle": {"SRE"}, "body": {"Hello"}}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/resume/send_job/email?"+q.Encode(), nil))

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), `"code":"send_failed"`)
	assert.Contains(t, resp.Body.String(), "535 auth failed")
}
