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
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// OpenSource opens formula file with given path. Standard input is used when
// the path is empty; it is never closed by the returned ReadCloser.
func OpenSource(path string) (io.ReadCloser, error) {
	if path == "" {
		log.Info().Msg("No file specified, reading formulas from standard input")
		return io.NopCloser(os.Stdin), nil
	}

	log.Info().Str(fileAttribute, path).Msg("File specified")
	file, err := os.Open(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	return file, nil
}

func closeSource(source io.Closer) {
	if err := source.Close(); err != nil {
		log.Error().Err(err).Msg("Unable to close formula file")
	}
}
