package forms

// Validation limits and lifecycle constants.
const (
	MaxFileSize         = 5 * 1024 * 1024 // bytes
	MaxFiles            = 10
	MinFiles            = 1
	DraftExpirationDays = 30
	TotalSteps          = 4
)

// Person types (step 1 discriminator).
const (
	PersonTypeFisica   = "fisica"
	PersonTypeJuridica = "juridica"
)

// User categories (step 1 discriminator).
const (
	CategoryCliente    = "cliente"
	CategoryFornecedor = "fornecedor"
	CategoryParceiro   = "parceiro"
)

var (
	personTypes    = []string{PersonTypeFisica, PersonTypeJuridica}
	userCategories = []string{CategoryCliente, CategoryFornecedor, CategoryParceiro}
	maritalStatus  = []string{"solteiro", "casado", "divorciado", "viuvo"}

	supplierCategories = []string{"produtos", "servicos", "ambos"}
	partnerTerritories = []string{"norte", "nordeste", "centro-oeste", "sudeste", "sul"}

	allowedFileTypes = []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"image/jpeg",
		"image/png",
	}
)
