package forms

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	phoneRegex = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
	timeRegex  = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	cpfRegex   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpjRegex  = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
	cepRegex   = regexp.MustCompile(`^\d{5}-\d{3}$`)
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// ValidationResult is the outcome of a step or full-form validation.
type ValidationResult struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// FieldErrors accumulates validation messages per field.
type FieldErrors map[string][]string

func (f FieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f FieldErrors) merge(prefix string, other FieldErrors) {
	for field, msgs := range other {
		f[prefix+field] = append(f[prefix+field], msgs...)
	}
}

func (f FieldErrors) result() ValidationResult {
	if len(f) == 0 {
		return ValidationResult{Valid: true}
	}
	return ValidationResult{Valid: false, Errors: f}
}

func validateStepData(step int, data map[string]any) FieldErrors {
	switch step {
	case 1:
		return validatePersonal(data)
	case 2:
		return validateAddress(data)
	case 3:
		return validateDocumentsSection(data)
	case 4:
		return validateConfirmation(data)
	}
	return nil
}

// ValidateFullForm applies all four step validators to the assembled draft
// data. Errors are namespaced by section.
func ValidateFullForm(data FormData) FieldErrors {
	errs := FieldErrors{}

	if data.Personal == nil {
		errs.add("personal", "Required")
	} else {
		errs.merge("personal.", validatePersonal(data.Personal))
	}

	if data.Address == nil {
		errs.add("address", "Required")
	} else {
		errs.merge("address.", validateAddress(data.Address))
	}

	docs := make([]any, len(data.Documents))
	for i, d := range data.Documents {
		docs[i] = d
	}
	var rawDocs any = docs
	if data.Documents == nil {
		rawDocs = nil
	}
	errs.merge("", validateDocuments(rawDocs))

	if data.Confirmation == nil {
		errs.add("confirmation", "Required")
	} else {
		errs.merge("confirmation.", validateConfirmation(data.Confirmation))
	}

	return errs
}

// validatePersonal checks the step 1 payload. The two discriminators are
// validated first; variant-specific records are only checked once both
// discriminators are known good, keeping the supplied variant fields
// consistent with the discriminators.
func validatePersonal(data map[string]any) FieldErrors {
	errs := FieldErrors{}

	personType, personTypeOK := enumField(data, "person_type", personTypes, errs)
	userCategory, userCategoryOK := enumField(data, "user_category", userCategories, errs)

	phone, ok := stringField(data, "phone", errs)
	if ok && !phoneRegex.MatchString(phone) {
		errs.add("phone", "Invalid phone format")
	}

	contactTime, ok := stringField(data, "preferred_contact_time", errs)
	if ok {
		if !timeRegex.MatchString(contactTime) {
			errs.add("preferred_contact_time", "Invalid time format")
		} else if hour, err := strconv.Atoi(contactTime[:2]); err == nil && (hour < 8 || hour > 18) {
			errs.add("preferred_contact_time", "Time must be between 08:00 and 18:00")
		}
	}

	if personTypeOK && userCategoryOK {
		switch personType {
		case PersonTypeFisica:
			validateFisica(data, errs)
		case PersonTypeJuridica:
			validateJuridica(data, errs)
		}
		switch userCategory {
		case CategoryCliente:
			validateCliente(data, errs)
		case CategoryFornecedor:
			validateFornecedor(data, errs)
		case CategoryParceiro:
			validateParceiro(data, errs)
		}
	}

	return errs
}

func validateFisica(data map[string]any, errs FieldErrors) {
	if name, ok := stringField(data, "full_name", errs); ok {
		if len(name) < 2 || len(name) > 100 {
			errs.add("full_name", "Must be between 2 and 100 characters")
		} else if !nameRegex.MatchString(name) {
			errs.add("full_name", "Only letters and spaces")
		}
	}

	if cpf, ok := stringField(data, "cpf", errs); ok && !cpfRegex.MatchString(cpf) {
		errs.add("cpf", "Invalid CPF format")
	}

	if rg, ok := stringField(data, "rg", errs); ok && (len(rg) < 7 || len(rg) > 12) {
		errs.add("rg", "Must be between 7 and 12 characters")
	}

	if birthDate, ok := stringField(data, "birth_date", errs); ok {
		validateBirthDate(birthDate, errs)
	}

	if status, ok := stringField(data, "marital_status", errs); ok && !contains(maritalStatus, status) {
		errs.add("marital_status", "Invalid value")
	}
}

// validateBirthDate requires a past date and an age of at least 18. The age is
// a calendar-year difference only; month and day are not considered.
func validateBirthDate(raw string, errs FieldErrors) {
	date, err := parseDate(raw)
	if err != nil {
		errs.add("birth_date", "Invalid date")
		return
	}
	now := time.Now()
	if !date.Before(now) || now.Year()-date.Year() < 18 {
		errs.add("birth_date", "Must be at least 18 years old")
	}
}

func validateJuridica(data map[string]any, errs FieldErrors) {
	if name, ok := stringField(data, "company_name", errs); ok && (len(name) < 2 || len(name) > 150) {
		errs.add("company_name", "Must be between 2 and 150 characters")
	}

	if trade, ok := optionalStringField(data, "trade_name", errs); ok && len(trade) > 100 {
		errs.add("trade_name", "Must be at most 100 characters")
	}

	if cnpj, ok := stringField(data, "cnpj", errs); ok && !cnpjRegex.MatchString(cnpj) {
		errs.add("cnpj", "Invalid CNPJ format")
	}

	if reg, ok := optionalStringField(data, "state_registration", errs); ok && len(reg) > 20 {
		errs.add("state_registration", "Must be at most 20 characters")
	}
}

func validateCliente(data map[string]any, errs FieldErrors) {
	if limit, ok := numberField(data, "client_credit_limit", errs); ok && (limit < 1000 || limit > 100000) {
		errs.add("client_credit_limit", "Must be between 1000 and 100000")
	}
}

func validateFornecedor(data map[string]any, errs FieldErrors) {
	if cat, ok := stringField(data, "supplier_category", errs); ok && !contains(supplierCategories, cat) {
		errs.add("supplier_category", "Invalid value")
	}

	if days, ok := numberField(data, "supplier_delivery_time", errs); ok {
		if days != math.Trunc(days) {
			errs.add("supplier_delivery_time", "Must be an integer")
		} else if days < 1 || days > 365 {
			errs.add("supplier_delivery_time", "Must be between 1 and 365")
		}
	}
}

func validateParceiro(data map[string]any, errs FieldErrors) {
	if rate, ok := numberField(data, "partner_commission_rate", errs); ok && (rate < 0.01 || rate > 15.0) {
		errs.add("partner_commission_rate", "Must be between 0.01 and 15")
	}

	if territory, ok := stringField(data, "partner_territory", errs); ok && !contains(partnerTerritories, territory) {
		errs.add("partner_territory", "Invalid value")
	}
}

func validateAddress(data map[string]any) FieldErrors {
	errs := FieldErrors{}

	if cep, ok := stringField(data, "cep", errs); ok && !cepRegex.MatchString(cep) {
		errs.add("cep", "Invalid CEP format")
	}

	if street, ok := stringField(data, "street", errs); ok && street == "" {
		errs.add("street", "Required")
	}

	if number, ok := stringField(data, "number", errs); ok && len(number) > 10 {
		errs.add("number", "Must be at most 10 characters")
	}

	if complement, ok := optionalStringField(data, "complement", errs); ok && len(complement) > 50 {
		errs.add("complement", "Must be at most 50 characters")
	}

	if neighborhood, ok := stringField(data, "neighborhood", errs); ok && neighborhood == "" {
		errs.add("neighborhood", "Required")
	}

	if city, ok := stringField(data, "city", errs); ok && city == "" {
		errs.add("city", "Required")
	}

	if state, ok := stringField(data, "state", errs); ok && len(state) != 2 {
		errs.add("state", "Must be exactly 2 characters")
	}

	return errs
}

func validateDocumentsSection(data map[string]any) FieldErrors {
	return validateDocuments(data["documents"])
}

func validateDocuments(raw any) FieldErrors {
	errs := FieldErrors{}

	if raw == nil {
		errs.add("documents", "Required")
		return errs
	}
	docs, ok := raw.([]any)
	if !ok {
		errs.add("documents", "Must be an array")
		return errs
	}

	if len(docs) < MinFiles {
		errs.add("documents", "At least one file is required")
	}
	if len(docs) > MaxFiles {
		errs.add("documents", "Too many files")
	}

	for i, entry := range docs {
		prefix := fmt.Sprintf("documents.%d.", i)
		doc, ok := entry.(map[string]any)
		if !ok {
			errs.add(strings.TrimSuffix(prefix, "."), "Invalid file metadata")
			continue
		}

		for _, field := range []string{"id", "name", "url", "uploadedAt"} {
			if val, ok := doc[field].(string); !ok || val == "" {
				errs.add(prefix+field, "Required")
			}
		}

		if size, ok := toNumber(doc["size"]); !ok {
			errs.add(prefix+"size", "Required")
		} else if size > MaxFileSize {
			errs.add(prefix+"size", "File too large")
		}

		if fileType, ok := doc["type"].(string); !ok || fileType == "" {
			errs.add(prefix+"type", "Required")
		} else if !contains(allowedFileTypes, fileType) {
			errs.add(prefix+"type", "File type not allowed")
		}
	}

	return errs
}

func validateConfirmation(data map[string]any) FieldErrors {
	errs := FieldErrors{}
	if accepted, ok := data["terms_accepted"].(bool); !ok || !accepted {
		errs.add("terms_accepted", "Terms must be accepted")
	}
	return errs
}

// stringField fetches a required string value, recording an error when it is
// missing or not a string.
func stringField(data map[string]any, key string, errs FieldErrors) (string, bool) {
	raw, present := data[key]
	if !present {
		errs.add(key, "Required")
		return "", false
	}
	val, ok := raw.(string)
	if !ok {
		errs.add(key, "Must be a string")
		return "", false
	}
	return val, true
}

// optionalStringField fetches a string value that may be absent.
func optionalStringField(data map[string]any, key string, errs FieldErrors) (string, bool) {
	raw, present := data[key]
	if !present || raw == nil {
		return "", false
	}
	val, ok := raw.(string)
	if !ok {
		errs.add(key, "Must be a string")
		return "", false
	}
	return val, true
}

func numberField(data map[string]any, key string, errs FieldErrors) (float64, bool) {
	raw, present := data[key]
	if !present {
		errs.add(key, "Required")
		return 0, false
	}
	val, ok := toNumber(raw)
	if !ok {
		errs.add(key, "Must be a number")
		return 0, false
	}
	return val, true
}

func enumField(data map[string]any, key string, allowed []string, errs FieldErrors) (string, bool) {
	val, ok := stringField(data, key, errs)
	if !ok {
		return "", false
	}
	if !contains(allowed, val) {
		errs.add(key, "Invalid value")
		return "", false
	}
	return val, true
}

func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}
