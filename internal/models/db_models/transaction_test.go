package db_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionStatusTerminal(t *testing.T) {
	assert.False(t, TxnStatusWaitingForPayment.Terminal())
	assert.False(t, TxnStatusWaitingForConfirmation.Terminal())

	assert.True(t, TxnStatusPaid.Terminal())
	assert.True(t, TxnStatusReject.Terminal())
	assert.True(t, TxnStatusExpired.Terminal())
}
