package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTerminal(t *testing.T) {
	cases := map[Status]bool{
		StatusPending:     false,
		StatusRecommended: false,
		StatusHRApproved:  false,
		StatusApproved:    true,
		StatusDisapproved: true,
		StatusCancelled:   true,
	}
	for status, want := range cases {
		assert.Equal(t, want, status.Terminal(), "status %s", status)
	}
}

func TestStatusCancellable(t *testing.T) {
	cases := map[Status]bool{
		StatusPending:     true,
		StatusRecommended: true,
		StatusHRApproved:  true,
		StatusApproved:    false,
		StatusDisapproved: false,
		StatusCancelled:   false,
	}
	for status, want := range cases {
		assert.Equal(t, want, status.Cancellable(), "status %s", status)
	}
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryVacation.Valid())
	assert.True(t, CategorySick.Valid())
	assert.False(t, Category("maternity").Valid())
	assert.False(t, Category("").Valid())
}

func TestDecisionValid(t *testing.T) {
	assert.True(t, DecisionApprove.Valid())
	assert.True(t, DecisionDisapprove.Valid())
	assert.False(t, Decision("defer").Valid())
}
