package database

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suncar/seeder/models"
	"github.com/suncar/seeder/utils"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
}

func TestBuildWorkOrderDocsCount(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	built := 0
	orders := BuildWorkOrderDocs(20, r, fixedNow, func() { built++ })
	assert.Len(t, orders, 20)
	assert.Equal(t, 20, built)

	assert.Empty(t, BuildWorkOrderDocs(0, r, fixedNow, nil))
	assert.Empty(t, BuildWorkOrderDocs(-3, r, fixedNow, nil))
}

func TestBuildWorkOrderDocsFieldsComeFromLookupTables(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	orders := BuildWorkOrderDocs(500, r, fixedNow, nil)

	var commentTexts []string
	for _, c := range Comments {
		if c != nil {
			commentTexts = append(commentTexts, *c)
		}
	}
	require.Len(t, commentTexts, 9)

	sawNilComment := false
	for _, o := range orders {
		assert.Contains(t, Brigades, models.BrigadeRef{Id: o.BrigadeId, Name: o.BrigadeName}, "brigade id/name pair must match an entry")
		assert.Contains(t, Clients, models.ClientRef{Number: o.ClientNumber, Name: o.ClientName}, "client number/name pair must match an entry")
		assert.Contains(t, models.ReportTypes, o.ReportType)
		assert.Contains(t, models.Statuses, o.Status)
		assert.True(t, o.Id.IsZero(), "ids are assigned on insert")
		if o.Comments == nil {
			sawNilComment = true
		} else {
			assert.Contains(t, commentTexts, *o.Comments)
		}
	}
	assert.True(t, sawNilComment, "the no-comment entry should appear in 500 draws")
}

func TestBuildWorkOrderDocsDateWindows(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	now := fixedNow()
	orders := BuildWorkOrderDocs(500, r, fixedNow, nil)

	for _, o := range orders {
		created, err := time.ParseInLocation(utils.ISOLayout, o.CreationDate, time.Local)
		require.NoError(t, err)
		executed, err := time.ParseInLocation(utils.ISOLayout, o.ExecutionDate, time.Local)
		require.NoError(t, err)

		assert.False(t, created.After(now))
		assert.False(t, created.Before(now.AddDate(0, 0, -MaxCreationDaysAgo)))
		assert.False(t, executed.Before(now.AddDate(0, 0, MinExecutionDayShift)))
		assert.False(t, executed.After(now.AddDate(0, 0, MaxExecutionDayShift)))
	}
}

func TestBuildWorkOrderDocsCommentsAreCopies(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	orders := BuildWorkOrderDocs(50, r, fixedNow, nil)
	for _, o := range orders {
		if o.Comments == nil {
			continue
		}
		*o.Comments = "changed"
	}
	for _, c := range Comments {
		if c != nil {
			assert.NotEqual(t, "changed", *c)
		}
	}
}

func TestBuildWorkOrderDocsDeterministicWithSeed(t *testing.T) {
	a := BuildWorkOrderDocs(10, rand.New(rand.NewSource(11)), fixedNow, nil)
	b := BuildWorkOrderDocs(10, rand.New(rand.NewSource(11)), fixedNow, nil)
	assert.Equal(t, a, b)
}
