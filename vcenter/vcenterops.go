// Copyright © 2024 The vmshuttle authors

package vcenter

import (
	"context"
	"crypto/sha1"
	"crypto/tls"
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/property"
	"github.com/vmware/govmomi/session/cache"
	"github.com/vmware/govmomi/vim25"
)

// VCenterClient is one authenticated endpoint binding. It is built once
// before the batch starts and shared read-only by every job.
type VCenterClient struct {
	VCClient            *vim25.Client
	VCFinder            *find.Finder
	VCPropertyCollector *property.Collector
}

func validateVCenter(ctx context.Context, username, password, host string, disableSSLVerification bool) (*vim25.Client, error) {
	// add protocol to host if not present
	if !strings.HasPrefix(host, "http") {
		host = "https://" + host
	}
	if !strings.HasSuffix(host, "/sdk") {
		host += "/sdk"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, err
	}
	u.User = url.UserPassword(username, password)
	// Share govc's session cache
	s := &cache.Session{
		URL:      u,
		Insecure: disableSSLVerification,
	}

	c := new(vim25.Client)
	err = s.Login(ctx, c, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to vCenter")
	}
	return c, nil
}

func VCenterClientBuilder(ctx context.Context, username, password, host string, disableSSLVerification bool) (*VCenterClient, error) {
	client, err := validateVCenter(ctx, username, password, host, disableSSLVerification)
	if err != nil {
		return nil, err
	}
	finder := find.NewFinder(client, false)
	pc := property.DefaultCollector(client)
	return &VCenterClient{VCClient: client, VCFinder: finder, VCPropertyCollector: pc}, nil
}

// GetThumbprint returns the SHA-1 thumbprint of the endpoint's TLS
// certificate, logged at connect time so the operator can confirm which
// endpoint the batch is talking to.
func GetThumbprint(host string) (string, error) {
	conn, err := tls.Dial("tcp", host+":443", &tls.Config{
		InsecureSkipVerify: true,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to connect to vCenter")
	}
	defer conn.Close()

	certs := conn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return "", errors.New("no certificates found")
	}

	sum := sha1.Sum(certs[0].Raw)
	parts := make([]string, len(sum))
	for idx, thumbyte := range sum {
		parts[idx] = hex.EncodeToString([]byte{thumbyte})
	}
	return strings.Join(parts, ":"), nil
}

// GetDatacenters returns all datacenters visible on the endpoint.
func (vcclient *VCenterClient) GetDatacenters(ctx context.Context) ([]*object.Datacenter, error) {
	datacenters, err := vcclient.VCFinder.DatacenterList(ctx, "*")
	if err != nil {
		return nil, err
	}
	return datacenters, nil
}
