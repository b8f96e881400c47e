package llm

import "testing"

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "response field", raw: `{"model":"llama3","response":"Dear Acme, ...","done":true}`, want: "Dear Acme, ...", wantOK: true},
		{name: "empty response", raw: `{"response":""}`, want: "", wantOK: true},
		{name: "escaped text", raw: `{"response":"Line one\nLine \"two\""}`, want: "Line one\nLine \"two\"", wantOK: true},
		{name: "numeric response", raw: `{"response":42}`, want: "42", wantOK: true},
		{name: "missing field", raw: `{"model":"llama3","done":true}`, want: UnparsedResponse},
		{name: "null field", raw: `{"response":null}`, want: UnparsedResponse},
		{name: "null field with spaces", raw: `{"model":"llama3","response": null ,"done":true}`, want: UnparsedResponse},
		{name: "array field", raw: `{"response":["a"]}`, want: UnparsedResponse},
		{name: "bool response", raw: `{"response":true}`, want: "true", wantOK: true},
		{name: "object field", raw: `{"response":{"text":"hi"}}`, want: UnparsedResponse},
		{name: "invalid json", raw: `{"response":`, want: UnparsedResponse},
		{name: "not an object", raw: `["response"]`, want: UnparsedResponse},
		{name: "plain text", raw: `Dear Acme`, want: UnparsedResponse},
		{name: "empty input", raw: ``, want: UnparsedResponse},
		{name: "binary", raw: "\x00\xff\xfe", want: UnparsedResponse},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseResponse([]byte(tt.raw))
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("ParseResponse(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseResponseNil(t *testing.T) {
	if got, ok := ParseResponse(nil); got != UnparsedResponse || ok {
		t.Fatalf("ParseResponse(nil) = (%q, %v)", got, ok)
	}
}
