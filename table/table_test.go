package table_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosom/bharatviz-go/bharatviz"
	"github.com/gosom/bharatviz-go/entities"
	"github.com/gosom/bharatviz-go/table"
)

func TestStateValues(t *testing.T) {
	t.Run("named columns", func(t *testing.T) {
		input := "state,value\nMaharashtra,82.9\nKerala,93.9\n"

		tbl, err := table.Read(strings.NewReader(input))
		require.NoError(t, err)

		records, err := tbl.StateValues()
		require.NoError(t, err)
		assert.Equal(t, []entities.StateValue{
			{State: "Maharashtra", Value: 82.9},
			{State: "Kerala", Value: 93.9},
		}, records)
	})

	t.Run("named columns in any position", func(t *testing.T) {
		input := "value,state\n82.9,Maharashtra\n"

		tbl, err := table.Read(strings.NewReader(input))
		require.NoError(t, err)

		records, err := tbl.StateValues()
		require.NoError(t, err)
		assert.Equal(t, []entities.StateValue{{State: "Maharashtra", Value: 82.9}}, records)
	})

	t.Run("positional reinterpretation", func(t *testing.T) {
		input := "state_name,literacy,extra\nMaharashtra,82.9,x\nKerala,93.9,y\n"

		tbl, err := table.Read(strings.NewReader(input))
		require.NoError(t, err)

		records, err := tbl.StateValues()
		require.NoError(t, err)
		assert.Equal(t, []entities.StateValue{
			{State: "Maharashtra", Value: 82.9},
			{State: "Kerala", Value: 93.9},
		}, records)
	})

	t.Run("positional output matches named output", func(t *testing.T) {
		named, err := table.Read(strings.NewReader("state,value\nGoa,55\n"))
		require.NoError(t, err)

		positional, err := table.Read(strings.NewReader("region,score\nGoa,55\n"))
		require.NoError(t, err)

		fromNamed, err := named.StateValues()
		require.NoError(t, err)

		fromPositional, err := positional.StateValues()
		require.NoError(t, err)

		assert.Equal(t, fromNamed, fromPositional)
	})

	t.Run("too few columns", func(t *testing.T) {
		tbl, err := table.Read(strings.NewReader("population\n1234\n"))
		require.NoError(t, err)

		_, err = tbl.StateValues()
		require.Error(t, err)
		assert.ErrorIs(t, err, bharatviz.ErrValidation)
		assert.Contains(t, err.Error(), "population")
	})

	t.Run("empty table", func(t *testing.T) {
		tbl, err := table.Read(strings.NewReader("state,value\n"))
		require.NoError(t, err)

		_, err = tbl.StateValues()
		require.Error(t, err)
		assert.ErrorIs(t, err, bharatviz.ErrValidation)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := table.Read(strings.NewReader(""))
		require.Error(t, err)
		assert.ErrorIs(t, err, bharatviz.ErrValidation)
	})

	t.Run("non numeric value", func(t *testing.T) {
		tbl, err := table.Read(strings.NewReader("state,value\nKerala,high\n"))
		require.NoError(t, err)

		_, err = tbl.StateValues()
		require.Error(t, err)
		assert.ErrorIs(t, err, bharatviz.ErrValidation)
		assert.Contains(t, err.Error(), "high")
	})
}

func TestDistrictValues(t *testing.T) {
	t.Run("named columns", func(t *testing.T) {
		input := "state,district,value\nMaharashtra,Mumbai,89.7\n"

		tbl, err := table.Read(strings.NewReader(input))
		require.NoError(t, err)

		records, err := tbl.DistrictValues()
		require.NoError(t, err)
		assert.Equal(t, []entities.DistrictValue{
			{State: "Maharashtra", District: "Mumbai", Value: 89.7},
		}, records)
	})

	t.Run("positional reinterpretation", func(t *testing.T) {
		input := "st,dt,literacy\nKarnataka,Bengaluru Urban,88.7\n"

		tbl, err := table.Read(strings.NewReader(input))
		require.NoError(t, err)

		records, err := tbl.DistrictValues()
		require.NoError(t, err)
		assert.Equal(t, []entities.DistrictValue{
			{State: "Karnataka", District: "Bengaluru Urban", Value: 88.7},
		}, records)
	})

	t.Run("too few columns", func(t *testing.T) {
		tbl, err := table.Read(strings.NewReader("state,value\nKerala,93.9\n"))
		require.NoError(t, err)

		_, err = tbl.DistrictValues()
		require.Error(t, err)
		assert.ErrorIs(t, err, bharatviz.ErrValidation)
		assert.Contains(t, err.Error(), "state, value")
	})
}

func TestFromMap(t *testing.T) {
	records := table.FromMap(map[string]float64{
		"Maharashtra": 82.9,
		"Kerala":      93.9,
		"Karnataka":   75.6,
	})

	assert.Equal(t, []entities.StateValue{
		{State: "Karnataka", Value: 75.6},
		{State: "Kerala", Value: 93.9},
		{State: "Maharashtra", Value: 82.9},
	}, records)
}

func TestFromColumns(t *testing.T) {
	t.Run("matching lengths", func(t *testing.T) {
		records, err := table.FromColumns(
			[]string{"Maharashtra", "Kerala"},
			[]float64{82.9, 93.9},
		)
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, "Kerala", records[1].State)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := table.FromColumns([]string{"Goa"}, []float64{1, 2})
		require.Error(t, err)
		assert.ErrorIs(t, err, bharatviz.ErrValidation)
	})
}

func TestFromDistrictColumns(t *testing.T) {
	t.Run("matching lengths", func(t *testing.T) {
		records, err := table.FromDistrictColumns(
			[]string{"Maharashtra"},
			[]string{"Mumbai"},
			[]float64{89.7},
		)
		require.NoError(t, err)
		assert.Equal(t, []entities.DistrictValue{
			{State: "Maharashtra", District: "Mumbai", Value: 89.7},
		}, records)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := table.FromDistrictColumns([]string{"Goa"}, nil, []float64{1})
		require.Error(t, err)
		assert.ErrorIs(t, err, bharatviz.ErrValidation)
	})
}
