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

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-calculator/types"
)

// Messages
const (
	databasePrintOldEvaluationsForCleanupOperationFailedMessage = "Print records from `evaluations` table prepared for cleanup failed"
	databaseCleanupOldEvaluationsOperationFailedMessage         = "Cleanup records from `evaluations` table failed"
	rowsDeletedMessage                                          = "Rows deleted"
)

// CleanupOperationSpecified function returns true if any history cleanup
// operation has been selected on command line
func CleanupOperationSpecified(cliFlags types.CliFlags) bool {
	return cliFlags.PrintOldEvaluationsForCleanup ||
		cliFlags.PerformOldEvaluationsCleanup
}

// PerformCleanupOperation function performs selected cleanup operation
func PerformCleanupOperation(storage Storage, cliFlags types.CliFlags) error {
	switch {
	case cliFlags.PrintOldEvaluationsForCleanup:
		return printOldEvaluationsForCleanup(storage, cliFlags)
	case cliFlags.PerformOldEvaluationsCleanup:
		return performOldEvaluationsCleanup(storage, cliFlags)
	default:
		return errors.New("Unknown operation selected")
	}
}

// printOldEvaluationsForCleanup function print all records from
// `evaluations` table that are older than specified max age.
func printOldEvaluationsForCleanup(storage Storage, cliFlags types.CliFlags) error {
	err := storage.PrintOldEvaluationsForCleanup(cliFlags.MaxAge)
	if err != nil {
		log.Error().Err(err).Msg(databasePrintOldEvaluationsForCleanupOperationFailedMessage)
		return err
	}

	return nil
}

// performOldEvaluationsCleanup function deletes all records from
// `evaluations` table that are older than specified max age.
func performOldEvaluationsCleanup(storage Storage, cliFlags types.CliFlags) error {
	affected, err := storage.CleanupOldEvaluations(cliFlags.MaxAge)
	if err != nil {
		log.Error().Err(err).Msg(databaseCleanupOldEvaluationsOperationFailedMessage)
		return err
	}
	log.Info().Int(rowsDeletedMessage, affected).Msg("Cleanup `evaluations` finished")

	return nil
}
