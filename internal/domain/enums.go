package domain

// Intent is the canonical payment action a sentence asks for.
type Intent string

const (
	IntentPay      Intent = "pay"
	IntentSend     Intent = "send"
	IntentTransfer Intent = "transfer"
)

// IntentLexicon maps English and Spanish verb lemmas to their canonical intent.
var IntentLexicon = map[string]Intent{
	"pay":        IntentPay,
	"send":       IntentSend,
	"transfer":   IntentTransfer,
	"pagar":      IntentPay,
	"enviar":     IntentSend,
	"transferir": IntentTransfer,
}

// IntentKeywordOrder is the order in which raw-text keywords are tried when no
// annotated verb maps to an intent. Spanish infinitives go first.
var IntentKeywordOrder = []string{"enviar", "transferir", "pagar", "send", "transfer", "pay"}

// EntityType is a named-entity category reported by the annotator.
type EntityType string

const (
	EntityMoney        EntityType = "MONEY"
	EntityPerson       EntityType = "PERSON"
	EntityOrganization EntityType = "ORGANIZATION"
	EntityEmail        EntityType = "EMAIL"
)

// ExportFormat is a supported parse log export format.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)
