package test

import (
	"fmt"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/randompkg"
)

// RandomCashCard returns random cash card owned by the given owner.
func RandomCashCard(owner string) domain.CashCard {
	return domain.CashCard{
		ID:     randompkg.IntBetween(1, 1000),
		Amount: randompkg.MoneyAmountBetween(-1000, 1000),
		Owner:  owner,
	}
}

// EquateDecimal makes cmp compare decimals by value, so 1.5 equals 1.50.
func EquateDecimal() cmp.Option {
	return cmp.Comparer(func(a, b decimal.Decimal) bool {
		return a.Equal(b)
	})
}

type eqDecimalMatcher struct {
	want decimal.Decimal
}

func (e eqDecimalMatcher) Matches(x interface{}) bool {
	got, ok := x.(decimal.Decimal)
	if !ok {
		return false
	}

	return e.want.Equal(got)
}

func (e eqDecimalMatcher) String() string {
	return fmt.Sprintf("is equal to decimal %s", e.want)
}

// EqDecimal returns a gomock matcher comparing decimals by value.
func EqDecimal(want decimal.Decimal) gomock.Matcher {
	return eqDecimalMatcher{want: want}
}
