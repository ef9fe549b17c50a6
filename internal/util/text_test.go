package util

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "nbsp markup", input: "2019&nbsp;", want: "2019"},
		{name: "amp markup removed not decoded", input: "Smith &amp; Co", want: "Smith Co"},
		{name: "whitespace runs", input: "  High \t Court\n Civil ", want: "High Court Civil"},
		{name: "already clean", input: "Court of Appeal", want: "Court of Appeal"},
		{name: "other entities untouched", input: "A &lt; B", want: "A &lt; B"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanText(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestStripPunctuation(t *testing.T) {
	if got := StripPunctuation("Hon. Judge A.B.C.! snake_case"); got != "Hon Judge ABC snake_case" {
		t.Fatalf("got %q", got)
	}
	if got := StripPunctuationStrict("snake_case (Pg.)"); got != "snakecase Pg" {
		t.Fatalf("got %q", got)
	}
	if got := StripPunctuation("Pengiran Haji Ça Va – 2"); got != "Pengiran Haji Ça Va  2" {
		t.Fatalf("got %q", got)
	}
}

func TestRemoveZeroWidth(t *testing.T) {
	if got := RemoveZeroWidth("Judge\u200bName"); got != "JudgeName" {
		t.Fatalf("got %q", got)
	}
}

func TestIsBlank(t *testing.T) {
	for _, v := range []string{"", " ", "\t\n"} {
		if !IsBlank(v) {
			t.Fatalf("%q should be blank", v)
		}
	}
	if IsBlank(" x ") {
		t.Fatal("x is not blank")
	}
}
