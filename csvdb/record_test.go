package csvdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordOK(t *testing.T) {
	record, err := NewRecord(" 1.0.1.0", "1.0.3.255 ", "中国", "福建", "福州")
	assert.Nil(t, err)
	assert.Equal(t, "1.0.1.0", record.Begin)
	assert.Equal(t, "1.0.3.255", record.End)
	assert.Equal(t, "中国", record.Country)
	assert.Equal(t, "福建", record.Province)
	assert.Equal(t, "福州", record.City)
}

func TestRecordEmptyAddress(t *testing.T) {
	_, err := NewRecord("", "1.0.3.255", "", "", "")
	assert.NotNil(t, err)

	_, err = NewRecord("1.0.1.0", "  ", "", "", "")
	assert.NotNil(t, err)
}

func TestMakeCityRecordSkipsUnusedColumn(t *testing.T) {
	record, err := MakeCityRecord([]string{"::", "::ff", "US", "California", "unused", "Los Angeles"})
	assert.Nil(t, err)
	assert.Equal(t, "US", record.Country)
	assert.Equal(t, "California", record.Province)
	assert.Equal(t, "Los Angeles", record.City)
}

func TestMakeCityRecordMissingColumns(t *testing.T) {
	_, err := MakeCityRecord([]string{"1.0.0.0", "1.0.0.255", "US", "California", ""})
	assert.NotNil(t, err)
}
