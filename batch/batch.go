// Copyright © 2024 The vmshuttle authors

// Package batch reads the ordered list of migration requests from a CSV
// file. Each row is one unit of work; all fields are required and there
// is no defaulting.
package batch

import (
	"encoding/csv"
	"io"
	"net"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// MigrationRequest is one row of the batch. Immutable once read.
type MigrationRequest struct {
	VMName             string
	SourceStagingStore string
	TargetIP           string
	DestStagingStore   string
	DestNetwork        string
	DestFinalStore     string
}

var columns = []string{
	"vm_name",
	"source_staging_store",
	"target_ip",
	"dest_staging_store",
	"dest_network",
	"dest_final_store",
}

func LoadFile(path string) ([]MigrationRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open batch file")
	}
	defer f.Close()
	return Read(f)
}

// Read parses a header-driven CSV of migration requests.
func Read(r io.Reader) ([]MigrationRequest, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read batch header")
	}
	index := map[string]int{}
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, errors.Errorf("batch file is missing column %q", col)
		}
	}

	var requests []MigrationRequest
	seen := map[string]bool{}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read batch line %d", line+1)
		}
		line++

		field := func(col string) string {
			return strings.TrimSpace(record[index[col]])
		}
		req := MigrationRequest{
			VMName:             field("vm_name"),
			SourceStagingStore: field("source_staging_store"),
			TargetIP:           field("target_ip"),
			DestStagingStore:   field("dest_staging_store"),
			DestNetwork:        field("dest_network"),
			DestFinalStore:     field("dest_final_store"),
		}
		if err := validate(req); err != nil {
			return nil, errors.Wrapf(err, "invalid batch line %d", line)
		}
		if seen[req.VMName] {
			return nil, errors.Errorf("invalid batch line %d: duplicate VM name %q", line, req.VMName)
		}
		seen[req.VMName] = true
		requests = append(requests, req)
	}
	if len(requests) == 0 {
		return nil, errors.New("batch file contains no migration requests")
	}
	return requests, nil
}

func validate(req MigrationRequest) error {
	required := map[string]string{
		"vm_name":              req.VMName,
		"source_staging_store": req.SourceStagingStore,
		"target_ip":            req.TargetIP,
		"dest_staging_store":   req.DestStagingStore,
		"dest_network":         req.DestNetwork,
		"dest_final_store":     req.DestFinalStore,
	}
	for _, col := range columns {
		if required[col] == "" {
			return errors.Errorf("field %q is required", col)
		}
	}
	if net.ParseIP(req.TargetIP) == nil {
		return errors.Errorf("field \"target_ip\" is not a valid IP address: %q", req.TargetIP)
	}
	return nil
}
