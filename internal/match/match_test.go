package match

import (
	"sort"
	"testing"
)

func TestSearchTerms(t *testing.T) {
	tests := []struct {
		name       string
		ingredient string
		want       []string
	}{
		{
			"quantity and compound name",
			"2 cups shredded Mozzarella cheese",
			[]string{"cheese", "shredded mozzarella cheese"},
		},
		{
			"short word survives singularization",
			"salt",
			[]string{"salt"},
		},
		{
			"plural s",
			"3 carrots",
			[]string{"carrot", "carrots"},
		},
		{
			"oes plural",
			"2 tomatoes",
			[]string{"tomato", "tomatoes"},
		},
		{
			"ies plural",
			"strawberries",
			[]string{"strawberries", "strawberry"},
		},
		{
			"parenthetical and comma tail stripped",
			"1 onion (red), finely chopped",
			[]string{"onion"},
		},
		{
			"fraction quantity with unit",
			"1/2 cup milk",
			[]string{"milk"},
		},
		{
			"empty input",
			"",
			nil,
		},
		{
			"whitespace only",
			"   ",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchTerms(tt.ingredient)
			sort.Strings(got)
			if len(got) != len(tt.want) {
				t.Fatalf("terms for %q = %v, want %v", tt.ingredient, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("terms for %q = %v, want %v", tt.ingredient, got, tt.want)
				}
			}
		})
	}
}

func TestSearchTermsDropsShortStems(t *testing.T) {
	// "salt" must not be singularized into a retained 3-char stem twice,
	// and nothing 2 chars or shorter may ever appear.
	for _, ingredient := range []string{"salt", "1 egg", "oil"} {
		for _, term := range SearchTerms(ingredient) {
			if len(term) <= 2 {
				t.Fatalf("ingredient %q produced too-short term %q", ingredient, term)
			}
		}
	}
}

func TestMentions(t *testing.T) {
	ingredients := []string{
		"2 cups shredded Mozzarella cheese",
		"1 onion, diced",
		"salt",
		"3 large eggs",
	}

	tests := []struct {
		name string
		step string
		want []string
	}{
		{
			"compound last word",
			"Add the mozzarella cheese now and stir.",
			[]string{"2 cups shredded Mozzarella cheese"},
		},
		{
			"singular form of plural ingredient",
			"Crack one egg into the bowl.",
			[]string{"3 large eggs"},
		},
		{
			"multiple mentions",
			"Season the onion with salt.",
			[]string{"1 onion, diced", "salt"},
		},
		{
			"whole word only",
			"Do not use saltine crackers.",
			nil,
		},
		{
			"no mentions",
			"Preheat the oven to 400 degrees.",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mentions(tt.step, ingredients)
			if len(got) != len(tt.want) {
				t.Fatalf("mentions = %v, want %v", got, tt.want)
			}
			for _, ing := range tt.want {
				if !got[ing] {
					t.Fatalf("expected %q mentioned in %q, got %v", ing, tt.step, got)
				}
			}
		})
	}
}

func TestMentionsEmptyIngredient(t *testing.T) {
	got := Mentions("Stir everything together.", []string{"", "   "})
	if len(got) != 0 {
		t.Fatalf("empty ingredients must never match, got %v", got)
	}
}
