package dto

import (
	"strings"

	"sekolahku_backend/internals/features/instansi/model"
	helper "sekolahku_backend/internals/helpers"
)

type CreateInstansiRequest struct {
	Name       string  `json:"instansi_name" form:"instansi_name" validate:"required,min=3,max=150"`
	Slug       *string `json:"instansi_slug" form:"instansi_slug" validate:"omitempty,max=160"`
	NPSN       *string `json:"instansi_npsn" form:"instansi_npsn" validate:"omitempty,numeric,len=8"`
	Address    *string `json:"instansi_address" form:"instansi_address"`
	Phone      *string `json:"instansi_phone" form:"instansi_phone" validate:"omitempty,max=30"`
	Email      *string `json:"instansi_email" form:"instansi_email" validate:"omitempty,email"`
	PPDBOpen   bool    `json:"instansi_ppdb_open" form:"instansi_ppdb_open"`
	PPDBFeeIDR int64   `json:"instansi_ppdb_fee_idr" form:"instansi_ppdb_fee_idr" validate:"gte=0"`
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	return helper.StrPtr(*p)
}

func (r CreateInstansiRequest) ToModel(slug string) model.InstansiModel {
	return model.InstansiModel{
		Name:       strings.TrimSpace(r.Name),
		Slug:       slug,
		NPSN:       trimPtr(r.NPSN),
		Address:    trimPtr(r.Address),
		Phone:      trimPtr(r.Phone),
		Email:      trimPtr(r.Email),
		IsActive:   true,
		PPDBOpen:   r.PPDBOpen,
		PPDBFeeIDR: r.PPDBFeeIDR,
	}
}

// UpdateInstansiRequest: PATCH parsial
type UpdateInstansiRequest struct {
	Name       *string `json:"instansi_name" form:"instansi_name" validate:"omitempty,min=3,max=150"`
	NPSN       *string `json:"instansi_npsn" form:"instansi_npsn" validate:"omitempty,numeric,len=8"`
	Address    *string `json:"instansi_address" form:"instansi_address"`
	Phone      *string `json:"instansi_phone" form:"instansi_phone" validate:"omitempty,max=30"`
	Email      *string `json:"instansi_email" form:"instansi_email" validate:"omitempty,email"`
	IsActive   *bool   `json:"instansi_is_active" form:"instansi_is_active"`
	PPDBOpen   *bool   `json:"instansi_ppdb_open" form:"instansi_ppdb_open"`
	PPDBFeeIDR *int64  `json:"instansi_ppdb_fee_idr" form:"instansi_ppdb_fee_idr" validate:"omitempty,gte=0"`
}

// Apply mengembalikan map kolom → nilai untuk Updates.
func (r UpdateInstansiRequest) Apply(allowActive bool) map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["instansi_name"] = strings.TrimSpace(*r.Name)
	}
	if r.NPSN != nil {
		m["instansi_npsn"] = trimPtr(r.NPSN)
	}
	if r.Address != nil {
		m["instansi_address"] = trimPtr(r.Address)
	}
	if r.Phone != nil {
		m["instansi_phone"] = trimPtr(r.Phone)
	}
	if r.Email != nil {
		m["instansi_email"] = trimPtr(r.Email)
	}
	if r.IsActive != nil && allowActive {
		m["instansi_is_active"] = *r.IsActive
	}
	if r.PPDBOpen != nil {
		m["instansi_ppdb_open"] = *r.PPDBOpen
	}
	if r.PPDBFeeIDR != nil {
		m["instansi_ppdb_fee_idr"] = *r.PPDBFeeIDR
	}
	return m
}

// PublicInstansi: tampilan publik (tanpa flag internal)
type PublicInstansi struct {
	Name       string  `json:"instansi_name"`
	Slug       string  `json:"instansi_slug"`
	NPSN       *string `json:"instansi_npsn,omitempty"`
	Address    *string `json:"instansi_address,omitempty"`
	Phone      *string `json:"instansi_phone,omitempty"`
	Email      *string `json:"instansi_email,omitempty"`
	LogoURL    *string `json:"instansi_logo_url,omitempty"`
	PPDBOpen   bool    `json:"instansi_ppdb_open"`
	PPDBFeeIDR int64   `json:"instansi_ppdb_fee_idr"`
}

func ToPublic(m model.InstansiModel) PublicInstansi {
	return PublicInstansi{
		Name: m.Name, Slug: m.Slug, NPSN: m.NPSN, Address: m.Address, Phone: m.Phone,
		Email: m.Email, LogoURL: m.LogoURL, PPDBOpen: m.PPDBOpen, PPDBFeeIDR: m.PPDBFeeIDR,
	}
}
