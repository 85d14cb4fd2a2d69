package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestUpdateApply(t *testing.T) {
	name := "  SMP Negeri 1  "
	blank := "   "
	open := true
	active := false
	fee := int64(150000)

	req := UpdateInstansiRequest{Name: &name, Phone: &blank, PPDBOpen: &open, IsActive: &active, PPDBFeeIDR: &fee}

	m := req.Apply(false)
	assert.Equal(t, "SMP Negeri 1", m["instansi_name"])
	assert.Nil(t, m["instansi_phone"])
	assert.Contains(t, m, "instansi_phone")
	assert.Equal(t, true, m["instansi_ppdb_open"])
	assert.Equal(t, fee, m["instansi_ppdb_fee_idr"])
	assert.NotContains(t, m, "instansi_is_active")

	assert.Equal(t, false, req.Apply(true)["instansi_is_active"])
}

func TestCreateValidation(t *testing.T) {
	v := validator.New()
	npsn := "2010A"
	assert.Error(t, v.Struct(CreateInstansiRequest{Name: "SD", PPDBFeeIDR: 0}))
	assert.Error(t, v.Struct(CreateInstansiRequest{Name: "SD Harapan", NPSN: &npsn}))
	assert.NoError(t, v.Struct(CreateInstansiRequest{Name: "SD Harapan", PPDBFeeIDR: 100000}))

	m := CreateInstansiRequest{Name: " SD Harapan ", PPDBOpen: true}.ToModel("sd-harapan")
	assert.Equal(t, "SD Harapan", m.Name)
	assert.True(t, m.IsActive)
	assert.True(t, m.PPDBOpen)
}
