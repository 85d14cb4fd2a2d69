package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/public_pages/ppdb/model"
)

var (
	ErrNoFee          = errors.New("pendaftaran ini tidak memerlukan pembayaran")
	ErrAlreadyPaid    = errors.New("biaya pendaftaran sudah lunas")
	ErrPaymentPending = errors.New("pembayaran sedang diproses, selesaikan lewat tautan sebelumnya")
	ErrNotPayable     = errors.New("status pendaftaran tidak bisa dibayar")
	ErrBadSignature   = errors.New("signature tidak valid")
	ErrGatewayOff     = errors.New("payment gateway belum dikonfigurasi")
)

type Customer struct {
	Name  string
	Email string
	Phone string
}

// Gateway: pembuat transaksi pembayaran (Midtrans Snap di produksi).
type Gateway interface {
	CreateTransaction(orderID string, amount int64, cust Customer) (token, redirectURL string, err error)
	ServerKey() string
}

type MidtransGateway struct {
	client    snap.Client
	serverKey string
}

// NewMidtransGatewayFromEnv: nil kalau MIDTRANS_SERVER_KEY kosong.
func NewMidtransGatewayFromEnv() *MidtransGateway {
	key := configs.MidtransServerKey
	if key == "" {
		return nil
	}
	env := midtrans.Sandbox
	if configs.MidtransUseProd {
		env = midtrans.Production
	}
	g := &MidtransGateway{serverKey: key}
	g.client.New(key, env)
	log.Printf("[MIDTRANS] snap client siap (production=%v)", configs.MidtransUseProd)
	return g
}

func (g *MidtransGateway) ServerKey() string { return g.serverKey }

func (g *MidtransGateway) CreateTransaction(orderID string, amount int64, cust Customer) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.Name,
			Email: cust.Email,
			Phone: cust.Phone,
		},
	}
	resp, mErr := g.client.CreateTransaction(req)
	if mErr != nil {
		return "", "", fmt.Errorf("midtrans: %w", mErr)
	}
	return resp.Token, resp.RedirectURL, nil
}

// CanPay: biaya > 0, belum lunas, pendaftaran masih aktif.
// pending boleh dibuat ulang setelah transaksi lama kedaluwarsa.
func CanPay(r *model.PPDBRegistrationModel) error {
	if r.FeeAmountIDR <= 0 || r.PaymentStatus == model.PaymentWaived {
		return ErrNoFee
	}
	if r.Status == model.StatusRejected || r.Status == model.StatusCancelled {
		return ErrNotPayable
	}
	switch r.PaymentStatus {
	case model.PaymentPaid:
		return ErrAlreadyPaid
	case model.PaymentPending:
		return ErrPaymentPending
	case model.PaymentUnpaid, model.PaymentExpired, model.PaymentFailed:
		return nil
	}
	return ErrNotPayable
}

// OrderIDFor: unik per percobaan bayar (Midtrans menolak order_id berulang).
func OrderIDFor(r *model.PPDBRegistrationModel, now time.Time) string {
	return fmt.Sprintf("%s-%d", r.RegistrationNumber, now.Unix())
}

// CreatePayment membuat transaksi Snap lalu menyimpan token + redirect URL.
func CreatePayment(ctx context.Context, db *gorm.DB, gw Gateway, r *model.PPDBRegistrationModel, now time.Time) error {
	if gw == nil {
		return ErrGatewayOff
	}
	if err := CanPay(r); err != nil {
		return err
	}
	orderID := OrderIDFor(r, now)
	token, redirect, err := gw.CreateTransaction(orderID, r.FeeAmountIDR, Customer{
		Name:  r.ParentName,
		Email: r.ParentEmail,
		Phone: r.ParentPhone,
	})
	if err != nil {
		log.Printf("[PPDBPayment] create transaksi %s gagal: %v", orderID, err)
		return err
	}
	t := now
	r.PaymentStatus = model.PaymentPending
	r.PaymentOrderID = &orderID
	r.PaymentToken = &token
	r.PaymentRedirectURL = &redirect
	r.PaymentRequestedAt = &t
	return db.WithContext(ctx).Model(r).Updates(map[string]any{
		"ppdb_registration_payment_status":       r.PaymentStatus,
		"ppdb_registration_payment_order_id":     orderID,
		"ppdb_registration_payment_token":        token,
		"ppdb_registration_payment_redirect_url": redirect,
		"ppdb_registration_payment_requested_at": t,
	}).Error
}

/* ===================== Webhook ===================== */

type Notification struct {
	OrderID           string `json:"order_id" form:"order_id"`
	StatusCode        string `json:"status_code" form:"status_code"`
	GrossAmount       string `json:"gross_amount" form:"gross_amount"`
	SignatureKey      string `json:"signature_key" form:"signature_key"`
	TransactionStatus string `json:"transaction_status" form:"transaction_status"`
	FraudStatus       string `json:"fraud_status" form:"fraud_status"`
	PaymentType       string `json:"payment_type" form:"payment_type"`
}

// Signature: SHA512(order_id + status_code + gross_amount + server_key) dalam hex.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func VerifySignature(n Notification, serverKey string) bool {
	want := Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	got := strings.ToLower(strings.TrimSpace(n.SignatureKey))
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// MapTransactionStatus: status Midtrans → status pembayaran PPDB. false = abaikan.
func MapTransactionStatus(txStatus, fraud string) (string, bool) {
	switch strings.ToLower(txStatus) {
	case "settlement":
		return model.PaymentPaid, true
	case "capture":
		if strings.EqualFold(fraud, "challenge") {
			return model.PaymentPending, true
		}
		return model.PaymentPaid, true
	case "pending":
		return model.PaymentPending, true
	case "expire":
		return model.PaymentExpired, true
	case "cancel", "deny", "failure":
		return model.PaymentFailed, true
	}
	return "", false
}

// ApplyPaymentStatus: lunas bersifat final; notifikasi lama tidak menurunkannya.
func ApplyPaymentStatus(r *model.PPDBRegistrationModel, status string, now time.Time) bool {
	if r.PaymentStatus == model.PaymentPaid || r.PaymentStatus == model.PaymentWaived {
		return false
	}
	if r.PaymentStatus == status {
		return false
	}
	r.PaymentStatus = status
	if status == model.PaymentPaid {
		t := now
		r.PaidAt = &t
	}
	return true
}

// HandleNotification: verifikasi signature, kunci baris, terapkan status.
func HandleNotification(ctx context.Context, db *gorm.DB, serverKey string, n Notification, now time.Time) (*model.PPDBRegistrationModel, error) {
	if !VerifySignature(n, serverKey) {
		return nil, ErrBadSignature
	}
	status, ok := MapTransactionStatus(n.TransactionStatus, n.FraudStatus)

	var reg model.PPDBRegistrationModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reg, "ppdb_registration_payment_order_id = ?", n.OrderID).Error; err != nil {
			return err
		}
		if !ok {
			log.Printf("[PPDBPayment] status %q untuk %s diabaikan", n.TransactionStatus, n.OrderID)
			return nil
		}
		if !ApplyPaymentStatus(&reg, status, now) {
			return nil
		}
		return tx.Model(&reg).Updates(map[string]any{
			"ppdb_registration_payment_status": reg.PaymentStatus,
			"ppdb_registration_paid_at":        reg.PaidAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[PPDBPayment] order=%s tx=%s → %s", n.OrderID, n.TransactionStatus, reg.PaymentStatus)
	return &reg, nil
}
