package order

import "testing"

func fieldSet(errs []FieldError) map[string]bool {
	m := make(map[string]bool, len(errs))
	for _, e := range errs {
		m[e.Field] = true
	}
	return m
}

func TestValidateCustomer(t *testing.T) {
	valid := Customer{
		Name:  "Ana Souza",
		Email: "ana@example.com",
		Phone: "(11) 98888-7777",
		TaxID: "529.982.247-25",
	}
	if errs := ValidateCustomer(valid); len(errs) != 0 {
		t.Fatalf("valid customer rejected: %v", errs)
	}

	tests := []struct {
		name   string
		mutate func(*Customer)
		field  string
	}{
		{"empty name", func(c *Customer) { c.Name = "  " }, "name"},
		{"bad email", func(c *Customer) { c.Email = "ana@" }, "email"},
		{"short phone", func(c *Customer) { c.Phone = "1234" }, "phone"},
		{"bad tax id checksum", func(c *Customer) { c.TaxID = "529.982.247-26" }, "taxId"},
		{"degenerate tax id", func(c *Customer) { c.TaxID = "111.111.111-11" }, "taxId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			errs := ValidateCustomer(c)
			if !fieldSet(errs)[tt.field] {
				t.Errorf("expected error on %s, got %v", tt.field, errs)
			}
			if len(errs) != 1 {
				t.Errorf("errors leaked past the owning field: %v", errs)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	valid := Address{
		PostalCode: "01310-100",
		Street:     "Av. Paulista",
		City:       "São Paulo",
		State:      "SP",
		Number:     "1000",
	}
	if errs := ValidateAddress(valid); len(errs) != 0 {
		t.Fatalf("valid address rejected: %v", errs)
	}

	a := valid
	a.Number = ""
	if !fieldSet(ValidateAddress(a))["number"] {
		t.Error("empty street number accepted")
	}

	a = valid
	a.PostalCode = "1310"
	if !fieldSet(ValidateAddress(a))["postalCode"] {
		t.Error("short postal code accepted")
	}
}

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct{ in, want string }{
		{"01310-100", "01310100"},
		{"01310100", "01310100"},
		{" 01310 100 ", "01310100"},
		{"1310", ""},
		{"abcdefgh", ""},
	}
	for _, tt := range tests {
		if got := NormalizePostalCode(tt.in); got != tt.want {
			t.Errorf("NormalizePostalCode(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
