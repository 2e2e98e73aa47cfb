package migration

import (
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Deep Tissue Massage", "deep-tissue-massage"},
		{"  Sports & Rehab!  ", "sports-rehab"},
		{"already-a-slug", "already-a-slug"},
		{"under_score  name", "under-score-name"},
		{"---", ""},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugSet_CollisionGetsLegacyIDSuffix(t *testing.T) {
	set := NewSlugSet("provider")

	first := set.Claim("Healing Hands", 10)
	second := set.Claim("Healing Hands", 25)

	if first != "healing-hands" {
		t.Fatalf("first claim = %q, want %q", first, "healing-hands")
	}
	if second != "healing-hands-25" {
		t.Fatalf("second claim = %q, want %q", second, "healing-hands-25")
	}
}

func TestSlugSet_EmptyNameFallsBackToPrefix(t *testing.T) {
	set := NewSlugSet("category")

	if got := set.Claim("!!!", 42); got != "category-42" {
		t.Fatalf("Claim = %q, want %q", got, "category-42")
	}
}

func TestParsePrice(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	cases := []struct {
		in   string
		want *float64
	}{
		{"$45.00", f(45.0)},
		{"Starting at $30", f(30.0)},
		{"1,200", f(1200)},
		{"60 minutes / $85", f(60)},
		{".50", f(0.5)},
		{"", nil},
		{"Call for pricing", nil},
		{"$", nil},
	}
	for _, c := range cases {
		got := ParsePrice(c.in)
		switch {
		case c.want == nil && got != nil:
			t.Errorf("ParsePrice(%q) = %v, want nil", c.in, *got)
		case c.want != nil && got == nil:
			t.Errorf("ParsePrice(%q) = nil, want %v", c.in, *c.want)
		case c.want != nil && got != nil && *got != *c.want:
			t.Errorf("ParsePrice(%q) = %v, want %v", c.in, *got, *c.want)
		}
	}
}

func TestYesNo(t *testing.T) {
	if !YesNo("Yes") {
		t.Error("YesNo(\"Yes\") = false, want true")
	}
	for _, in := range []string{"No", "yes", "YES", "Y", "1", "true", ""} {
		if YesNo(in) {
			t.Errorf("YesNo(%q) = true, want false", in)
		}
	}
}

func TestValidDate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2019-06-15", true},
		{"2019-06-15 10:30:00", true},
		{"0000-00-00", false},
		{"0000-00-00 00:00:00", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidDate(c.in); got != c.want {
			t.Errorf("ValidDate(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2019-06-15 10:30:00")
	if !ok {
		t.Fatal("expected datetime to parse")
	}
	want := time.Date(2019, 6, 15, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want %v", got, want)
	}

	got, ok = ParseDate("2019-06-15")
	if !ok {
		t.Fatal("expected date-only to parse")
	}
	want = time.Date(2019, 6, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want %v", got, want)
	}

	for _, in := range []string{"0000-00-00", "", "not a date"} {
		if _, ok := ParseDate(in); ok {
			t.Errorf("ParseDate(%q) ok = true, want false", in)
		}
	}
}

func TestDateOr(t *testing.T) {
	def := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := DateOr("0000-00-00", def); !got.Equal(def) {
		t.Fatalf("DateOr zero date = %v, want default %v", got, def)
	}
	if got := DateOr("2019-06-15", def); got.Equal(def) {
		t.Fatal("DateOr valid date returned default")
	}
}

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string // "" означает ожидаемый nil
	}{
		{"<p>Great <b>massage</b> place</p>", "Great massage place"},
		{"plain text", "plain text"},
		{"<p></p>", ""},
		{"<br/><br/>", ""},
		{"", ""},
	}
	for _, c := range cases {
		got := StripHTML(c.in)
		if c.want == "" {
			if got != nil {
				t.Errorf("StripHTML(%q) = %q, want nil", c.in, *got)
			}
			continue
		}
		if got == nil {
			t.Errorf("StripHTML(%q) = nil, want %q", c.in, c.want)
			continue
		}
		if *got != c.want {
			t.Errorf("StripHTML(%q) = %q, want %q", c.in, *got, c.want)
		}
	}
}
