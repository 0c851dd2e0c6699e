package cli

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/kamaj/bank/pkg/domain/account"
	"github.com/shopspring/decimal"
)

const (
	pinRule    = "required,len=4,number"
	amountRule = "required,max=16,amount"
)

// At most 13 integer digits and two fraction digits, no sign.
var amountPattern = regexp.MustCompile(`^\d{1,13}(\.\d{0,2})?$`)

func newValidator() *validator.Validate {
	v := validator.New()
	// RegisterValidation only fails for an empty tag or a baked-in name.
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		return amountPattern.MatchString(fl.Field().String())
	})
	return v
}

func (c *Controller) validPIN(pin string) bool {
	return c.validate.Var(pin, pinRule) == nil
}

// parseAmount returns the amount if s is a non-negative decimal with at most
// two fraction digits and no more than account.MaxBalance.
func (c *Controller) parseAmount(s string) (decimal.Decimal, bool) {
	if err := c.validate.Var(s, amountRule); err != nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.GreaterThan(account.MaxBalance) {
		return decimal.Zero, false
	}
	return d, true
}
