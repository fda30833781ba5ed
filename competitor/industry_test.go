package competitor

import "testing"

func TestDetectIndustry(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		keywords []string
		want     Industry
	}{
		{"ecommerce domain", "myshop.com", nil, IndustryEcommerce},
		{"technology keyword", "example.com", []string{"cloud hosting"}, IndustryTechnology},
		{"finance keyword", "", []string{"home loan rates"}, IndustryFinance},
		{"marketing keyword", "", []string{"brand awareness"}, IndustryMarketing},
		{"case insensitive", "RETAIL-HUB.COM", nil, IndustryEcommerce},
		{"ecommerce outranks finance", "", []string{"bank", "store"}, IndustryEcommerce},
		{"no match defaults", "example.org", []string{"gardening"}, DefaultIndustry},
		{"finance domain outscores tech substring", "fintech-bank.com", nil, IndustryFinance},
		{"finance keywords", "mybank.com", []string{"loan", "money"}, IndustryFinance},
		{"short terms need whole words", "", []string{"email", "detail", "happy"}, DefaultIndustry},
		{"short terms as words", "", []string{"ai", "apps"}, IndustryTechnology},
		{"plural keywords match", "", []string{"products"}, IndustryEcommerce},
		{"more hits beat priority", "", []string{"store", "bank", "loan"}, IndustryFinance},
		{"empty input defaults", "", nil, DefaultIndustry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectIndustry(tt.domain, tt.keywords); got != tt.want {
				t.Errorf("DetectIndustry(%q, %v) = %s, want %s", tt.domain, tt.keywords, got, tt.want)
			}
		})
	}
}

func TestIndustryNames(t *testing.T) {
	if IndustryEcommerce.String() != "ecommerce" {
		t.Errorf("unexpected name %q", IndustryEcommerce.String())
	}
	if IndustryTechnology.DisplayName() != "Technology" {
		t.Errorf("unexpected display name %q", IndustryTechnology.DisplayName())
	}
	if Industry(42).String() != DefaultIndustry.String() {
		t.Errorf("unknown industry should render as the default")
	}
}
