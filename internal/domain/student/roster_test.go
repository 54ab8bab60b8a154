package student

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStudent(t *testing.T, id, name string) *Student {
	t.Helper()
	s, err := NewStudent(id, Name(name), GroupSecondary, time.Now())
	require.NoError(t, err)
	return s
}

func TestNewStudent_Validation(t *testing.T) {
	_, err := NewStudent("", Name("أحمد"), GroupSecondary, time.Now())
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = NewStudent("id-1", Name("   "), GroupSecondary, time.Now())
	assert.ErrorIs(t, err, ErrInvalidName)

	s, err := NewStudent("id-1", Name("  أحمد  "), GroupSecondary, time.Now())
	require.NoError(t, err)
	assert.Equal(t, Name("أحمد"), s.Name)

	// Пустая группа заменяется группой по умолчанию.
	s, err = NewStudent("id-2", Name("سالم"), Group(" "), time.Now())
	require.NoError(t, err)
	assert.Equal(t, GroupNewStudent, s.Group)
}

func TestRoster_Add_PreservesOrder(t *testing.T) {
	r := NewRoster()
	require.NoError(t, r.Add(mustStudent(t, "1", "خالد")))
	require.NoError(t, r.Add(mustStudent(t, "2", "عمر")))
	require.NoError(t, r.Add(mustStudent(t, "3", "يوسف")))

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "خالد", all[0].Name.String())
	assert.Equal(t, "عمر", all[1].Name.String())
	assert.Equal(t, "يوسف", all[2].Name.String())
}

func TestRoster_Add_RejectsDuplicateName(t *testing.T) {
	r := NewRoster()
	require.NoError(t, r.Add(mustStudent(t, "1", "Omar")))

	// Same name with different case and padding counts as a duplicate.
	err := r.Add(mustStudent(t, "2", "  omar "))
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, 1, r.Len())
}

func TestRoster_Add_RejectsDuplicateID(t *testing.T) {
	r := NewRoster()
	require.NoError(t, r.Add(mustStudent(t, "1", "Omar")))

	err := r.Add(mustStudent(t, "1", "Khalid"))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.NotErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, 1, r.Len())
}

func TestRoster_Search(t *testing.T) {
	r := NewRoster()
	require.NoError(t, r.Add(mustStudent(t, "1", "محمد الأحمد")))
	require.NoError(t, r.Add(mustStudent(t, "2", "خالد العمري")))
	require.NoError(t, r.Add(mustStudent(t, "3", "محمد الصالح")))

	hits := r.Search("محمد")
	require.Len(t, hits, 2)
	assert.Equal(t, "1", hits[0].ID)
	assert.Equal(t, "3", hits[1].ID)

	assert.Len(t, r.Search(""), 3)
	assert.Len(t, r.Search("   "), 3)
	assert.Empty(t, r.Search("سعود"))
}

func TestRoster_Get(t *testing.T) {
	r := NewRoster()
	require.NoError(t, r.Add(mustStudent(t, "abc", "فهد")))

	s, err := r.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, "فهد", s.Name.String())

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
