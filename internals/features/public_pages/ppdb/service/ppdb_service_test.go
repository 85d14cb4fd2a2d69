package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/public_pages/ppdb/model"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "PPDB-2025-00001", FormatNumber(2025, 1))
	assert.Equal(t, "PPDB-2026-12345", FormatNumber(2026, 12345))
}

func TestAcademicYearFor(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), "2025/2026"},
		{time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), "2025/2026"},
		{time.Date(2025, time.June, 30, 23, 59, 0, 0, time.UTC), "2025/2026"},
		{time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), "2026/2027"},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "2026/2027"},
	}
	for _, tt := range tests {
		t.Run(tt.at.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tt.want, AcademicYearFor(tt.at))
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{model.StatusPending, model.StatusVerified, true},
		{model.StatusPending, model.StatusRejected, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusAccepted, false},
		{model.StatusVerified, model.StatusAccepted, true},
		{model.StatusVerified, model.StatusRejected, true},
		{model.StatusVerified, model.StatusCancelled, false},
		{model.StatusAccepted, model.StatusRejected, false},
		{model.StatusRejected, model.StatusPending, false},
		{model.StatusCancelled, model.StatusVerified, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanPay(t *testing.T) {
	tests := []struct {
		name string
		reg  model.PPDBRegistrationModel
		want error
	}{
		{name: "unpaid", reg: model.PPDBRegistrationModel{FeeAmountIDR: 150000, PaymentStatus: model.PaymentUnpaid, Status: model.StatusPending}},
		{name: "expired retry", reg: model.PPDBRegistrationModel{FeeAmountIDR: 150000, PaymentStatus: model.PaymentExpired, Status: model.StatusVerified}},
		{name: "failed retry", reg: model.PPDBRegistrationModel{FeeAmountIDR: 150000, PaymentStatus: model.PaymentFailed, Status: model.StatusPending}},
		{name: "no fee", reg: model.PPDBRegistrationModel{PaymentStatus: model.PaymentWaived}, want: ErrNoFee},
		{name: "paid", reg: model.PPDBRegistrationModel{FeeAmountIDR: 1, PaymentStatus: model.PaymentPaid}, want: ErrAlreadyPaid},
		{name: "pending", reg: model.PPDBRegistrationModel{FeeAmountIDR: 1, PaymentStatus: model.PaymentPending}, want: ErrPaymentPending},
		{name: "rejected", reg: model.PPDBRegistrationModel{FeeAmountIDR: 1, PaymentStatus: model.PaymentUnpaid, Status: model.StatusRejected}, want: ErrNotPayable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanPay(&tt.reg)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreatePaymentGuards(t *testing.T) {
	reg := &model.PPDBRegistrationModel{FeeAmountIDR: 100000, PaymentStatus: model.PaymentPaid}
	assert.ErrorIs(t, CreatePayment(context.Background(), nil, nil, reg, time.Now()), ErrGatewayOff)
	assert.ErrorIs(t, CreatePayment(context.Background(), nil, fakeGateway{}, reg, time.Now()), ErrAlreadyPaid)
}

type fakeGateway struct{}

func (fakeGateway) CreateTransaction(string, int64, Customer) (string, string, error) {
	return "tok", "https://pay", nil
}
func (fakeGateway) ServerKey() string { return "SB-key" }

func TestSignature(t *testing.T) {
	sum := sha512.Sum512([]byte("PPDB-2025-00001-1700000000" + "200" + "150000.00" + "SB-key"))
	want := hex.EncodeToString(sum[:])
	assert.Equal(t, want, Signature("PPDB-2025-00001-1700000000", "200", "150000.00", "SB-key"))

	n := Notification{OrderID: "PPDB-2025-00001-1700000000", StatusCode: "200", GrossAmount: "150000.00", SignatureKey: want}
	assert.True(t, VerifySignature(n, "SB-key"))
	assert.False(t, VerifySignature(n, "other-key"))

	n.GrossAmount = "1.00"
	assert.False(t, VerifySignature(n, "SB-key"))
}

func TestMapTransactionStatus(t *testing.T) {
	tests := []struct {
		tx, fraud, want string
		ok              bool
	}{
		{"settlement", "", model.PaymentPaid, true},
		{"capture", "accept", model.PaymentPaid, true},
		{"capture", "challenge", model.PaymentPending, true},
		{"pending", "", model.PaymentPending, true},
		{"expire", "", model.PaymentExpired, true},
		{"cancel", "", model.PaymentFailed, true},
		{"deny", "", model.PaymentFailed, true},
		{"refund", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.tx+"/"+tt.fraud, func(t *testing.T) {
			got, ok := MapTransactionStatus(tt.tx, tt.fraud)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyPaymentStatus(t *testing.T) {
	now := time.Now()
	r := model.PPDBRegistrationModel{PaymentStatus: model.PaymentPending}

	assert.True(t, ApplyPaymentStatus(&r, model.PaymentPaid, now))
	require.NotNil(t, r.PaidAt)
	assert.Equal(t, model.PaymentPaid, r.PaymentStatus)

	// notifikasi expire yang datang terlambat tidak menurunkan status lunas
	assert.False(t, ApplyPaymentStatus(&r, model.PaymentExpired, now))
	assert.Equal(t, model.PaymentPaid, r.PaymentStatus)

	p := model.PPDBRegistrationModel{PaymentStatus: model.PaymentPending}
	assert.False(t, ApplyPaymentStatus(&p, model.PaymentPending, now))
	assert.True(t, ApplyPaymentStatus(&p, model.PaymentExpired, now))
	assert.Nil(t, p.PaidAt)
}

func TestOrderIDFor(t *testing.T) {
	r := &model.PPDBRegistrationModel{RegistrationNumber: "PPDB-2025-00007"}
	assert.Equal(t, "PPDB-2025-00007-1700000000", OrderIDFor(r, time.Unix(1700000000, 0)))
}
