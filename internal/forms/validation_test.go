package forms

import (
	"testing"
)

func validFisicaCliente() map[string]any {
	return map[string]any{
		"person_type":            "fisica",
		"user_category":          "cliente",
		"phone":                  "(11) 99999-8888",
		"preferred_contact_time": "09:30",
		"full_name":              "Maria Silva",
		"cpf":                    "123.456.789-09",
		"rg":                     "12345678",
		"birth_date":             "1990-05-10",
		"marital_status":         "casado",
		"client_credit_limit":    5000.0,
	}
}

func validJuridicaFornecedor() map[string]any {
	return map[string]any{
		"person_type":            "juridica",
		"user_category":          "fornecedor",
		"phone":                  "(21) 3333-4444",
		"preferred_contact_time": "14:00",
		"company_name":           "Acme Ltda",
		"cnpj":                   "12.345.678/0001-90",
		"supplier_category":      "produtos",
		"supplier_delivery_time": 30.0,
	}
}

func validAddress() map[string]any {
	return map[string]any{
		"cep":          "01001-000",
		"street":       "Praça da Sé",
		"number":       "100",
		"neighborhood": "Sé",
		"city":         "São Paulo",
		"state":        "SP",
	}
}

func validDocument() map[string]any {
	return map[string]any{
		"id":         "abc12345",
		"name":       "doc.pdf",
		"size":       1024.0,
		"type":       "application/pdf",
		"url":        "https://storage.mock.com/files/abc12345/doc.pdf",
		"uploadedAt": "2025-01-01T10:00:00Z",
	}
}

func TestValidatePersonalFisicaClienteValid(t *testing.T) {
	errs := validatePersonal(validFisicaCliente())
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidatePersonalJuridicaFornecedorValid(t *testing.T) {
	errs := validatePersonal(validJuridicaFornecedor())
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidatePersonalCreditLimitRange(t *testing.T) {
	data := validFisicaCliente()
	data["client_credit_limit"] = 500.0
	errs := validatePersonal(data)
	if len(errs["client_credit_limit"]) == 0 {
		t.Fatalf("expected client_credit_limit error, got %v", errs)
	}

	data["client_credit_limit"] = 5000.0
	errs = validatePersonal(data)
	if len(errs) != 0 {
		t.Fatalf("expected no errors for limit 5000, got %v", errs)
	}
}

func TestValidatePersonalInvalidDiscriminatorSkipsVariants(t *testing.T) {
	data := validFisicaCliente()
	data["person_type"] = "alien"
	delete(data, "cpf")

	errs := validatePersonal(data)
	if len(errs["person_type"]) == 0 {
		t.Fatalf("expected person_type error, got %v", errs)
	}
	// Variant fields are not checked until both discriminators are valid.
	if len(errs["cpf"]) != 0 {
		t.Fatalf("expected no cpf error when discriminator invalid, got %v", errs)
	}
}

func TestValidatePersonalCollectsAllFieldErrors(t *testing.T) {
	data := validFisicaCliente()
	data["phone"] = "11999998888"
	data["cpf"] = "12345678909"
	data["client_credit_limit"] = 200000.0

	errs := validatePersonal(data)
	for _, field := range []string{"phone", "cpf", "client_credit_limit"} {
		if len(errs[field]) == 0 {
			t.Errorf("expected error for %s, got none (errors: %v)", field, errs)
		}
	}
}

func TestValidatePersonalContactTimeBusinessHours(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"08:00", true},
		{"18:59", true},
		{"07:59", false},
		{"19:00", false},
		{"25:00", false},
		{"0930", false},
	}
	for _, tc := range cases {
		data := validFisicaCliente()
		data["preferred_contact_time"] = tc.value
		errs := validatePersonal(data)
		hasErr := len(errs["preferred_contact_time"]) > 0
		if hasErr == tc.valid {
			t.Errorf("preferred_contact_time %q: valid=%v but errors=%v", tc.value, tc.valid, errs)
		}
	}
}

func TestValidatePersonalUnderageFails(t *testing.T) {
	data := validFisicaCliente()
	data["birth_date"] = "2015-01-01"
	errs := validatePersonal(data)
	if len(errs["birth_date"]) == 0 {
		t.Fatalf("expected birth_date error, got %v", errs)
	}
}

func TestValidateAddress(t *testing.T) {
	if errs := validateAddress(validAddress()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	data := validAddress()
	data["cep"] = "1001-000"
	data["state"] = "SAO"
	delete(data, "city")
	errs := validateAddress(data)
	for _, field := range []string{"cep", "state", "city"} {
		if len(errs[field]) == 0 {
			t.Errorf("expected error for %s, got none (errors: %v)", field, errs)
		}
	}
}

func TestValidateAddressComplementOptional(t *testing.T) {
	data := validAddress()
	errs := validateAddress(data)
	if len(errs) != 0 {
		t.Fatalf("expected no errors without complement, got %v", errs)
	}

	data["complement"] = "apto 12"
	if errs := validateAddress(data); len(errs) != 0 {
		t.Fatalf("expected no errors with short complement, got %v", errs)
	}

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}
	data["complement"] = string(long)
	if errs := validateAddress(data); len(errs["complement"]) == 0 {
		t.Fatalf("expected complement error, got %v", errs)
	}
}

func TestValidateDocuments(t *testing.T) {
	errs := validateDocuments([]any{validDocument()})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	if errs := validateDocuments([]any{}); len(errs["documents"]) == 0 {
		t.Fatalf("expected minimum-files error, got %v", errs)
	}

	many := make([]any, 11)
	for i := range many {
		many[i] = validDocument()
	}
	if errs := validateDocuments(many); len(errs["documents"]) == 0 {
		t.Fatalf("expected too-many-files error, got %v", errs)
	}

	doc := validDocument()
	doc["size"] = float64(6 * 1024 * 1024)
	doc["type"] = "application/zip"
	errs = validateDocuments([]any{doc})
	if len(errs["documents.0.size"]) == 0 {
		t.Errorf("expected size error, got %v", errs)
	}
	if len(errs["documents.0.type"]) == 0 {
		t.Errorf("expected type error, got %v", errs)
	}
}

func TestValidateConfirmation(t *testing.T) {
	if errs := validateConfirmation(map[string]any{"terms_accepted": true}); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if errs := validateConfirmation(map[string]any{"terms_accepted": false}); len(errs["terms_accepted"]) == 0 {
		t.Fatalf("expected terms error, got %v", errs)
	}
	if errs := validateConfirmation(map[string]any{}); len(errs["terms_accepted"]) == 0 {
		t.Fatalf("expected terms error for missing flag, got %v", errs)
	}
}

func TestValidateFullForm(t *testing.T) {
	data := FormData{
		Personal:     validFisicaCliente(),
		Address:      validAddress(),
		Documents:    []map[string]any{validDocument()},
		Confirmation: map[string]any{"terms_accepted": true},
	}
	if errs := ValidateFullForm(data); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	data.Confirmation = map[string]any{"terms_accepted": false}
	errs := ValidateFullForm(data)
	if len(errs["confirmation.terms_accepted"]) == 0 {
		t.Fatalf("expected namespaced confirmation error, got %v", errs)
	}
}

func TestValidateFullFormMissingSections(t *testing.T) {
	errs := ValidateFullForm(FormData{})
	for _, field := range []string{"personal", "address", "documents", "confirmation"} {
		if len(errs[field]) == 0 {
			t.Errorf("expected error for missing %s, got none (errors: %v)", field, errs)
		}
	}
}

func TestProgressPercentage(t *testing.T) {
	expected := map[int]int{1: 0, 2: 25, 3: 50, 4: 75}
	for step, want := range expected {
		if got := ProgressPercentage(step); got != want {
			t.Errorf("step %d: expected %d, got %d", step, want, got)
		}
	}
}
