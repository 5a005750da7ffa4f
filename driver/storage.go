/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package driver

// This source file contains an implementation of interface between Go code and
// (almost any) SQL database like PostgreSQL or SQLite. The database is used
// as a journal of all evaluated expressions.
//
// It is possible to configure connection to selected database by using
// StorageConfiguration structure. Currently SQLite (driver "sqlite3") and
// PostgreSQL (driver "postgres") are supported.

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"           // PostgreSQL database driver
	_ "github.com/mattn/go-sqlite3" // SQLite database driver

	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-calculator/conf"
	"github.com/RedHatInsights/rpn-calculator/types"
)

// Storage represents an interface to almost any database or storage system
type Storage interface {
	Close() error
	CreateSchema() error
	WriteEvaluation(record types.EvaluationRecord) error
	ReadEvaluationsForRun(runID types.RunID) ([]types.EvaluationRecord, error)
	PrintOldEvaluationsForCleanup(maxAge string) error
	CleanupOldEvaluations(maxAge string) (int, error)
}

// DBStorage is an implementation of Storage interface that use selected SQL like database
// like SQLite, PostgreSQL, MariaDB, RDS etc. That implementation is based on the standard
// sql package. It is possible to configure connection via Configuration structure.
type DBStorage struct {
	connection   *sql.DB
	dbDriverType types.DBDriver
}

// error messages
const (
	unableToCloseDBRowsHandle = "Unable to close DB rows handle"
)

// other messages
const (
	RunIDMessage       = "Run ID"
	LineNumberMessage  = "Line number"
	ExpressionMessage  = "Expression"
	EvaluatedAtMessage = "Evaluated at"
	MaxAgeAttribute    = "max age"
)

// SQL statements
const (
	// Create table with evaluation records if it does not exist
	createEvaluationsTable = `
		CREATE TABLE IF NOT EXISTS evaluations (
		    run_id       VARCHAR NOT NULL,
		    line_number  INTEGER NOT NULL,
		    expression   VARCHAR NOT NULL,
		    result       INTEGER,
		    error_kind   VARCHAR NOT NULL,
		    evaluated_at TIMESTAMP NOT NULL,
		    PRIMARY KEY (run_id, line_number)
		)
`

	// Insert one evaluation record
	insertEvaluation = `
		INSERT INTO evaluations(run_id, line_number, expression, result, error_kind, evaluated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
`

	// Read all evaluation records for given run
	selectEvaluationsForRun = `
		SELECT line_number, expression, result, error_kind, evaluated_at
		  FROM evaluations
		 WHERE run_id = $1
		 ORDER BY line_number
`

	// Display older records from evaluations table (PostgreSQL)
	displayOldEvaluationsPostgres = `
		SELECT run_id, line_number, expression, evaluated_at
		  FROM evaluations
		 WHERE evaluated_at < NOW() - $1::INTERVAL
		 ORDER BY evaluated_at
`

	// Display older records from evaluations table (SQLite)
	displayOldEvaluationsSQLite = `
		SELECT run_id, line_number, expression, evaluated_at
		  FROM evaluations
		 WHERE evaluated_at < datetime('now', '-' || $1)
		 ORDER BY evaluated_at
`

	// Delete older records from evaluations table (PostgreSQL)
	deleteOldEvaluationsPostgres = `
		DELETE
		  FROM evaluations
		 WHERE evaluated_at < NOW() - $1::INTERVAL
`

	// Delete older records from evaluations table (SQLite)
	deleteOldEvaluationsSQLite = `
		DELETE
		  FROM evaluations
		 WHERE evaluated_at < datetime('now', '-' || $1)
`
)

// NewStorage function creates and initializes a new instance of Storage interface
func NewStorage(configuration conf.StorageConfiguration) (*DBStorage, error) {
	driverType, driverName, dataSource, err := initAndGetDriver(configuration)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf(
		"Making connection to data storage, driver=%s",
		driverName,
	)

	connection, err := sql.Open(driverName, dataSource)
	if err != nil {
		log.Error().Err(err).Msg("Can not connect to data storage")
		return nil, err
	}

	return NewFromConnection(connection, driverType), nil
}

// NewFromConnection function creates and initializes a new instance of Storage interface from prepared connection
func NewFromConnection(connection *sql.DB, dbDriverType types.DBDriver) *DBStorage {
	return &DBStorage{
		connection:   connection,
		dbDriverType: dbDriverType,
	}
}

// initAndGetDriver checks if driver is supported and returns driver type,
// driver name, dataSource and error
func initAndGetDriver(configuration conf.StorageConfiguration) (driverType types.DBDriver, driverName, dataSource string, err error) {
	driverName = configuration.Driver

	switch driverName {
	case "sqlite3":
		driverType = types.DBDriverSQLite3
		dataSource = configuration.SQLiteDataSource
	case "postgres":
		driverType = types.DBDriverPostgres
		dataSource = fmt.Sprintf(
			"postgresql://%v:%v@%v:%v/%v?%v",
			configuration.PGUsername,
			configuration.PGPassword,
			configuration.PGHost,
			configuration.PGPort,
			configuration.PGDBName,
			configuration.PGParams,
		)
	default:
		err = fmt.Errorf("driver %v is not supported", driverName)
		return
	}

	return
}

// Close method closes the connection to database. Needs to be called at the end of application lifecycle.
func (storage DBStorage) Close() error {
	log.Info().Msg("Closing connection to data storage")
	if storage.connection != nil {
		err := storage.connection.Close()
		if err != nil {
			log.Error().Err(err).Msg("Can not close connection to data storage")
			return err
		}
	}
	return nil
}

// CreateSchema method creates all tables needed by the storage if they do
// not exist yet.
func (storage DBStorage) CreateSchema() error {
	_, err := storage.connection.Exec(createEvaluationsTable)
	return err
}

// WriteEvaluation method writes one evaluation record into the database.
// Result is stored as NULL for failed evaluations.
func (storage DBStorage) WriteEvaluation(record types.EvaluationRecord) error {
	result := sql.NullInt32{
		Int32: record.Result,
		Valid: !record.Failed(),
	}

	_, err := storage.connection.Exec(
		insertEvaluation,
		record.RunID,
		record.LineNumber,
		record.Expression,
		result,
		record.ErrorKind,
		record.EvaluatedAt,
	)
	return err
}

// ReadEvaluationsForRun method reads all evaluation records for given run,
// ordered by line number.
func (storage DBStorage) ReadEvaluationsForRun(runID types.RunID) ([]types.EvaluationRecord, error) {
	var records = make([]types.EvaluationRecord, 0)

	rows, err := storage.connection.Query(selectEvaluationsForRun, runID)
	if err != nil {
		return records, err
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error().Err(err).Msg(unableToCloseDBRowsHandle)
		}
	}()

	for rows.Next() {
		var (
			lineNumber  types.LineNumber
			expression  string
			result      sql.NullInt32
			errorKind   string
			evaluatedAt time.Time
		)

		if err := rows.Scan(&lineNumber, &expression, &result, &errorKind, &evaluatedAt); err != nil {
			return records, err
		}

		records = append(records, types.EvaluationRecord{
			RunID:       runID,
			LineNumber:  lineNumber,
			Expression:  expression,
			Result:      result.Int32,
			ErrorKind:   errorKind,
			EvaluatedAt: evaluatedAt,
		})
	}

	return records, rows.Err()
}

// PrintOldEvaluationsForCleanup method prints all evaluation records that
// are older than specified max age.
func (storage DBStorage) PrintOldEvaluationsForCleanup(maxAge string) error {
	statement := displayOldEvaluationsPostgres
	if storage.dbDriverType == types.DBDriverSQLite3 {
		statement = displayOldEvaluationsSQLite
	}

	log.Info().Str(MaxAgeAttribute, maxAge).Msg("PrintOldEvaluationsForCleanup operation")

	rows, err := storage.connection.Query(statement, maxAge)
	if err != nil {
		return err
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error().Err(err).Msg(unableToCloseDBRowsHandle)
		}
	}()

	for rows.Next() {
		var (
			runID       types.RunID
			lineNumber  types.LineNumber
			expression  string
			evaluatedAt time.Time
		)

		if err := rows.Scan(&runID, &lineNumber, &expression, &evaluatedAt); err != nil {
			log.Error().Err(err).Msg("Unable to read evaluation record")
			return err
		}

		log.Info().
			Str(RunIDMessage, string(runID)).
			Int(LineNumberMessage, int(lineNumber)).
			Str(ExpressionMessage, expression).
			Str(EvaluatedAtMessage, evaluatedAt.Format(time.RFC3339)).
			Msg("Old evaluation")
	}

	return rows.Err()
}

// CleanupOldEvaluations method deletes all evaluation records that are
// older than specified max age and returns number of deleted rows.
func (storage DBStorage) CleanupOldEvaluations(maxAge string) (int, error) {
	statement := deleteOldEvaluationsPostgres
	if storage.dbDriverType == types.DBDriverSQLite3 {
		statement = deleteOldEvaluationsSQLite
	}

	result, err := storage.connection.Exec(statement, maxAge)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(affected), nil
}
