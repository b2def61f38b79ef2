package composer

import "errors"

// ValidationKind identifies which submission precondition failed.
type ValidationKind string

const (
	KindBusinessRequired ValidationKind = "business_required"
	KindEmptyCart        ValidationKind = "empty_cart"
	KindDeliveryRequired ValidationKind = "delivery_required"
)

// ValidationError is a local, pre-network submission failure. It is
// always recoverable: no request was issued and no state was touched.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindBusinessRequired:
		return "Business ID is required"
	case KindEmptyCart:
		return "Please add at least one pastry"
	case KindDeliveryRequired:
		return "Delivery details are required"
	default:
		return "invalid order"
	}
}

// ErrSubmissionInFlight is returned when Submit is called while another
// submission has not finished yet.
var ErrSubmissionInFlight = errors.New("an order submission is already in progress")

// AsValidation unwraps err as a *ValidationError if that is what it is.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
