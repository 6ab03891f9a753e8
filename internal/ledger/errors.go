package ledger

import "errors"

var ErrInsufficientEnvelopeFunds = errors.New("the envelope does not hold enough money for this withdrawal")
