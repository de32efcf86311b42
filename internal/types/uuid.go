package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inv_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// initializeSID initializes the shortid generator once
func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short ID with a prefix.
// Total length is capped at 12 characters, e.g., `INV-xYZ12A8Q`.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(fmt.Sprintf("%s%s", prefix, id))
}

// GenerateInvoiceNumber returns a human-readable invoice number, e.g. INV-K8FJOOFX
func GenerateInvoiceNumber() string {
	return GenerateShortIDWithPrefix(SHORT_ID_PREFIX_INVOICE)
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_INVOICE           = "inv"
	UUID_PREFIX_INVOICE_LINE_ITEM = "inv_line"
	UUID_PREFIX_CUSTOMER          = "cust"
	UUID_PREFIX_TAX_PROFILE       = "taxprof"
	UUID_PREFIX_PAYMENT           = "pay"
	UUID_PREFIX_REFUND            = "ref"
	UUID_PREFIX_TAX               = "tax"
	UUID_PREFIX_TAX_CODE          = "txc"
	UUID_PREFIX_CLASSIFICATION    = "txcl"
	UUID_PREFIX_ITEM              = "item"
	UUID_PREFIX_DISCOUNT          = "disc"
	UUID_PREFIX_SURCHARGE         = "surch"
)

const (
	SHORT_ID_PREFIX_INVOICE = "INV-"
)
