package classify

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/deposit-validator/internal/asof"
	"github.com/carson-networks/deposit-validator/internal/refdata"
	"github.com/carson-networks/deposit-validator/internal/schema"
)

func date(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func joinedRecord(day string, ref *refdata.Record, previousActivity string, remark string) asof.JoinedRecord {
	j := asof.JoinedRecord{
		UploadedRecord: schema.UploadedRecord{
			Date:     date(day),
			ClientID: "5",
			Deposit:  decimal.New(50, 0),
		},
		Ref:    ref,
		Remark: remark,
	}
	if previousActivity != "" {
		d := date(previousActivity)
		j.PreviousActivity = &d
	}
	return j
}

func refRecord() *refdata.Record {
	return &refdata.Record{
		AccountID:     "5",
		Date:          date("2024-01-12"),
		DepositAmount: decimal.New(100, 0),
	}
}

// Delta of exactly seven days is valid.
func TestClassify_CooldownElapsed(t *testing.T) {
	records := []asof.JoinedRecord{
		joinedRecord("2024-01-12", refRecord(), "2024-01-05", ""),
	}

	classified := Classify(records, DefaultCooldownDays)
	assert.Equal(t, StatusValid, classified[0].Status)
}

// Delta of four days is inside the cooldown.
func TestClassify_InsideCooldown(t *testing.T) {
	records := []asof.JoinedRecord{
		joinedRecord("2024-01-09", refRecord(), "2024-01-05", ""),
	}

	classified := Classify(records, DefaultCooldownDays)
	assert.Equal(t, StatusInvalid, classified[0].Status)
}

func TestClassify_ZeroDelta(t *testing.T) {
	records := []asof.JoinedRecord{
		joinedRecord("2024-01-05", refRecord(), "2024-01-05", ""),
	}

	classified := Classify(records, DefaultCooldownDays)
	assert.Equal(t, StatusInvalid, classified[0].Status)
}

// A previous activity dated after the deposit is a data anomaly; it counts
// as invalid exactly like a small positive delta.
func TestClassify_NegativeDelta(t *testing.T) {
	records := []asof.JoinedRecord{
		joinedRecord("2024-01-05", refRecord(), "2024-01-20", ""),
	}

	classified := Classify(records, DefaultCooldownDays)
	assert.Equal(t, StatusInvalid, classified[0].Status)
}

func TestClassify_NoPreviousDate(t *testing.T) {
	records := []asof.JoinedRecord{
		joinedRecord("2024-01-12", refRecord(), "", asof.RemarkNoPreviousDate),
	}

	classified := Classify(records, DefaultCooldownDays)
	assert.Equal(t, StatusNoPreviousDate, classified[0].Status)
	assert.Equal(t, asof.RemarkNoPreviousDate, classified[0].Remark)
}

// A missing exact reference match beats everything else, including the
// no-previous-date remark, and clears the remark.
func TestClassify_NoEntryOverrides(t *testing.T) {
	records := []asof.JoinedRecord{
		joinedRecord("2024-01-12", nil, "", asof.RemarkNoPreviousDate),
		joinedRecord("2024-01-12", nil, "2024-01-05", ""),
	}

	classified := Classify(records, DefaultCooldownDays)

	for _, c := range classified {
		assert.Equal(t, StatusNoEntryFound, c.Status)
		assert.Equal(t, "", c.Remark)
	}
}

func TestClassify_CustomCooldown(t *testing.T) {
	records := []asof.JoinedRecord{
		joinedRecord("2024-01-12", refRecord(), "2024-01-05", ""),
	}

	classified := Classify(records, 10)
	assert.Equal(t, StatusInvalid, classified[0].Status)

	classified = Classify(records, 3)
	assert.Equal(t, StatusValid, classified[0].Status)
}
