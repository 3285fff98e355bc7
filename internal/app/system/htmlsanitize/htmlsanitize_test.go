package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/homeclass/portal/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	result := htmlsanitize.Sanitize("")
	if result != "" {
		t.Errorf("expected empty string, got %q", result)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	result := htmlsanitize.Sanitize("Hello, World!")
	if result != "Hello, World!" {
		t.Errorf("expected plain text unchanged, got %q", result)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	result := htmlsanitize.Sanitize(input)
	if result != input {
		t.Errorf("expected safe HTML preserved, got %q", result)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Hello</p><script>alert('xss')</script>"
	result := htmlsanitize.Sanitize(input)
	if result != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", result)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	input := `<a href="https://example.com" onclick="steal()">link</a>`
	result := htmlsanitize.Sanitize(input)
	if result == input {
		t.Errorf("expected onclick stripped, got %q", result)
	}
	for _, bad := range []string{"onclick", "steal"} {
		if strings.Contains(result, bad) {
			t.Errorf("result still contains %q: %q", bad, result)
		}
	}
}

func TestSanitize_RemovesIframe(t *testing.T) {
	input := `before<iframe src="https://evil.example"></iframe>after`
	result := htmlsanitize.Sanitize(input)
	if strings.Contains(result, "iframe") {
		t.Errorf("expected iframe removed, got %q", result)
	}
}

func TestPlainText_Empty(t *testing.T) {
	if got := htmlsanitize.PlainText(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestPlainText_StripsAllTags(t *testing.T) {
	input := "<p><strong>Homework</strong> due <em>Friday</em></p>"
	result := htmlsanitize.PlainText(input)
	if result != "Homework due Friday" {
		t.Errorf("expected tags stripped, got %q", result)
	}
}

func TestPlainText_PreservesText(t *testing.T) {
	input := "Field trip at 9:30, bring lunch"
	if got := htmlsanitize.PlainText(input); got != input {
		t.Errorf("expected text unchanged, got %q", got)
	}
}
