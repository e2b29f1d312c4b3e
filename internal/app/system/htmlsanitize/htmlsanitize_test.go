package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		wants []string
		bans  []string
	}{
		{
			name:  "plain text untouched",
			in:    "Homework due Friday",
			wants: []string{"Homework due Friday"},
		},
		{
			name:  "script stripped",
			in:    `<p>hi</p><script>alert(1)</script>`,
			wants: []string{"<p>hi</p>"},
			bans:  []string{"<script", "alert(1)"},
		},
		{
			name:  "event handler stripped",
			in:    `<b onclick="steal()">bold</b>`,
			wants: []string{"bold"},
			bans:  []string{"onclick"},
		},
		{
			name: "javascript url stripped",
			in:   `<a href="javascript:evil()">link</a>`,
			bans: []string{"javascript:"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sanitize(tc.in)
			for _, w := range tc.wants {
				if !strings.Contains(got, w) {
					t.Errorf("expected %q in output %q", w, got)
				}
			}
			for _, b := range tc.bans {
				if strings.Contains(got, b) {
					t.Errorf("expected %q removed from output %q", b, got)
				}
			}
		})
	}
}

func TestSanitize_Empty(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q", got)
	}
}
