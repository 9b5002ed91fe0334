package persistence

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
)

type PostgresSnapshotterSuite struct {
	suite.Suite
	db   *sql.DB
	mock sqlmock.Sqlmock
	snap *PostgresSnapshotter
}

func TestPostgresSnapshotterSuite(t *testing.T) {
	suite.Run(t, new(PostgresSnapshotterSuite))
}

func (s *PostgresSnapshotterSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.db, s.mock = db, mock
	s.snap = NewPostgres(db, "")
}

func (s *PostgresSnapshotterSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *PostgresSnapshotterSuite) TestSaveUpsertsInTransaction() {
	img := sampleImage()
	data, err := Encode(img)
	s.Require().NoError(err)

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO logvault_snapshots")).
		WithArgs(DefaultSnapshotName, sqlmock.AnyArg(), FormatVersion, data, img.CapturedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	s.NoError(s.snap.Save(context.Background(), img))
}

func (s *PostgresSnapshotterSuite) TestSaveRollsBackOnFailure() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO logvault_snapshots").WillReturnError(errors.New("disk full"))
	s.mock.ExpectRollback()

	err := s.snap.Save(context.Background(), sampleImage())
	s.Require().Error(err)
	s.Contains(err.Error(), "upsert snapshot")
}

func (s *PostgresSnapshotterSuite) TestLoad() {
	data, err := Encode(sampleImage())
	s.Require().NoError(err)

	s.mock.ExpectQuery(regexp.QuoteMeta(selectSnapshotSQL)).
		WithArgs(DefaultSnapshotName).
		WillReturnRows(sqlmock.NewRows([]string{"image"}).AddRow(data))

	img, err := s.snap.Load(context.Background())
	s.Require().NoError(err)
	s.Equal(sampleImage(), img)
}

func (s *PostgresSnapshotterSuite) TestLoadAbsent() {
	s.mock.ExpectQuery(regexp.QuoteMeta(selectSnapshotSQL)).
		WithArgs(DefaultSnapshotName).
		WillReturnRows(sqlmock.NewRows([]string{"image"}))

	img, err := s.snap.Load(context.Background())
	s.NoError(err)
	s.Nil(img)
}

func (s *PostgresSnapshotterSuite) TestLoadCorrupt() {
	s.mock.ExpectQuery(regexp.QuoteMeta(selectSnapshotSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"image"}).AddRow([]byte(`{"version":7}`)))

	_, err := s.snap.Load(context.Background())
	s.ErrorIs(err, ErrCorruptImage)
}

func (s *PostgresSnapshotterSuite) TestLoadQueryFailure() {
	s.mock.ExpectQuery(regexp.QuoteMeta(selectSnapshotSQL)).WillReturnError(errors.New("connection reset"))

	_, err := s.snap.Load(context.Background())
	s.Require().Error(err)
	s.NotErrorIs(err, ErrCorruptImage)
}
