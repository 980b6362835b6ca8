package components

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestAlert_EscapesMessage(t *testing.T) {
	var buf bytes.Buffer
	if err := Alert(`<script>alert(1)</script>`, "error").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>") {
		t.Errorf("message not escaped: %s", out)
	}
	if !strings.Contains(out, "alert-error") {
		t.Errorf("kind class missing: %s", out)
	}
}

func TestAlert_UnknownKindIsInfo(t *testing.T) {
	var buf bytes.Buffer
	Alert("hi", `" onclick="x`).Render(context.Background(), &buf)
	if !strings.Contains(buf.String(), "alert-info") || strings.Contains(buf.String(), "onclick") {
		t.Errorf("unexpected markup: %s", buf.String())
	}
}

func TestNav(t *testing.T) {
	var in, out bytes.Buffer
	Nav(true, "tok").Render(context.Background(), &in)
	Nav(false, "").Render(context.Background(), &out)

	if !strings.Contains(in.String(), `href="/goals"`) || !strings.Contains(in.String(), `value="tok"`) {
		t.Errorf("logged-in nav missing links or csrf: %s", in.String())
	}
	if strings.Contains(out.String(), "/goals") || !strings.Contains(out.String(), "/register") {
		t.Errorf("guest nav wrong: %s", out.String())
	}
}

func TestCSRF_EscapesToken(t *testing.T) {
	var buf bytes.Buffer
	if err := CSRF(`a"b`).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `<input type="hidden" name="_csrf" value="a&#34;b">`; got != want {
		t.Errorf("CSRF = %s, want %s", got, want)
	}
}
