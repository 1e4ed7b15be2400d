package inventory

import "errors"

var (
	ErrProductNotFound         = errors.New("product not found")
	ErrSupplierInvoiceNotFound = errors.New("supplier invoice not found")
)
