package headline

import "testing"

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, ok := ParseCategory(string(c))
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %q, %v", c, got, ok)
		}
	}

	for _, bad := range []string{"", "Politics", "sports ", "unknown", "'; DROP TABLE headlines;--"} {
		if _, ok := ParseCategory(bad); ok {
			t.Errorf("ParseCategory(%q) accepted an invalid category", bad)
		}
	}
}

func TestCategoriesEndsWithUncategorized(t *testing.T) {
	cats := Categories()
	if cats[len(cats)-1] != CategoryNone {
		t.Errorf("expected uncategorized last, got %s", cats[len(cats)-1])
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		title string
		want  Category
	}{
		{"内閣支持率が低下", CategoryPolitics},
		{"日銀が金利を据え置き", CategoryEconomy},
		{"新しいAIモデルが発表", CategoryTechnology},
		{"大谷が2打席連続ホームラン", CategorySports},
		{"人気アニメの続編決定", CategoryEntertainment},
		{"ワクチン接種が開始", CategoryScience},
		{"ウクライナ情勢が緊迫", CategoryInternational},
		{"Weather alert issued", CategoryScience},
		{"何の変哲もない話", CategoryNone},
		{"", CategoryNone},
	}

	for _, tt := range tests {
		if got := Categorize(tt.title); got != tt.want {
			t.Errorf("Categorize(%q) = %s, want %s", tt.title, got, tt.want)
		}
	}
}

func TestCategorizeIsCaseInsensitive(t *testing.T) {
	if got := Categorize("ai breakthrough announced"); got != CategoryTechnology {
		t.Errorf("Categorize lowercase ai = %s, want %s", got, CategoryTechnology)
	}
}
