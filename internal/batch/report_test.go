package batch

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedItem(index int, name string, outputs ...string) Item {
	it := Item{Index: index, Name: name, Status: StatusEncoded}
	for _, o := range outputs {
		it.Outputs = append(it.Outputs, []byte(o))
	}
	return it
}

func fileNames(r *Report) []string {
	var names []string
	for _, f := range r.Files() {
		names = append(names, f.Name)
	}
	return names
}

func TestReport_FilesSingleOutput(t *testing.T) {
	failed := Item{Index: 1, Name: "bad.png"}
	failed.fail(errors.New("boom"))

	r := &Report{
		Operation: OpRemoveBackground,
		Config:    RemoveBackgroundConfig{},
		Items: []Item{
			encodedItem(0, "stamp.jpg", "a"),
			failed,
			encodedItem(2, "dir/stamp.png", "c"),
			encodedItem(3, "", "d"),
		},
	}

	assert.Equal(t, []string{
		"stamp_remove-background.png",
		"stamp_3_remove-background.png",
		"image4_remove-background.png",
	}, fileNames(r))
	assert.Equal(t, []byte("c"), r.Files()[1].Data)
}

func TestReport_FilesSuffixedStemCollides(t *testing.T) {
	r := &Report{
		Operation: OpRemoveBackground,
		Config:    RemoveBackgroundConfig{},
		Items: []Item{
			encodedItem(0, "a.png", "1"),
			encodedItem(1, "a_3.png", "2"),
			encodedItem(2, "a.png", "3"),
			encodedItem(3, "a.png", "4"),
		},
	}

	names := fileNames(r)
	assert.Equal(t, []string{
		"a_remove-background.png",
		"a_3_remove-background.png",
		"a_4_remove-background.png",
		"a_5_remove-background.png",
	}, names)

	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate output name %s", n)
		seen[n] = true
	}
}

func TestReport_FilesSplit(t *testing.T) {
	r := &Report{
		Operation: OpSplit,
		Config:    SplitConfig{Rows: 2, Cols: 2},
		Items:     []Item{encodedItem(0, "sheet.png", "1", "2", "3", "4")},
	}
	assert.Equal(t, []string{
		"sheet_r1c1.png",
		"sheet_r1c2.png",
		"sheet_r2c1.png",
		"sheet_r2c2.png",
	}, fileNames(r))
}

func TestReport_Counts(t *testing.T) {
	bad := Item{Index: 0, Name: "a"}
	bad.fail(errors.New("x"))
	r := &Report{Items: []Item{bad, encodedItem(1, "b", "b"), {Index: 2, Status: StatusPending}}}

	assert.Len(t, r.Succeeded(), 1)
	assert.Len(t, r.Failed(), 1)
	assert.Equal(t, []int{0}, r.FailedIndexes())
}

func TestItem_FailClearsOutputs(t *testing.T) {
	it := encodedItem(0, "a.png", "data")
	it.fail(errors.New("encode: short write"))
	assert.False(t, it.OK())
	assert.Nil(t, it.Outputs)
	assert.Equal(t, "encode: short write", it.Message)
}

func TestReport_JSON(t *testing.T) {
	bad := Item{Index: 1, Name: "b.png"}
	bad.fail(errors.New("decode: unknown format"))
	r := &Report{Operation: OpCrop, Config: CropConfig{Mode: CropAuto}, Items: []Item{encodedItem(0, "a.png", "x"), bad}}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"operation": "crop",
		"items": [
			{"index": 0, "name": "a.png", "status": "encoded"},
			{"index": 1, "name": "b.png", "status": "failed", "error": "decode: unknown format"}
		]
	}`, string(data))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "transformed", StatusTransformed.String())
	assert.Equal(t, "status(42)", Status(42).String())
}

func TestStatus_UnmarshalText(t *testing.T) {
	var s Status
	require.NoError(t, s.UnmarshalText([]byte("encoded")))
	assert.Equal(t, StatusEncoded, s)
	assert.Error(t, s.UnmarshalText([]byte("done")))
}
