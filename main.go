// Copyright © 2024 The vmshuttle authors

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"k8s.io/klog/v2"

	"github.com/vmshuttle/vmshuttle/batch"
	"github.com/vmshuttle/vmshuttle/creds"
	"github.com/vmshuttle/vmshuttle/migrate"
	"github.com/vmshuttle/vmshuttle/monitor"
	"github.com/vmshuttle/vmshuttle/platform"
	"github.com/vmshuttle/vmshuttle/vcenter"
)

// Config is read from the environment. Passwords may be left unset and
// resolved from an encrypted credentials file or an interactive prompt.
type Config struct {
	SourceHost      string `envconfig:"SOURCE_VCENTER_HOST" required:"true"`
	SourceUsername  string `envconfig:"SOURCE_VCENTER_USERNAME" required:"true"`
	SourcePassword  string `envconfig:"SOURCE_VCENTER_PASSWORD"`
	SourceInsecure  bool   `envconfig:"SOURCE_VCENTER_INSECURE"`
	SourceCredsFile string `envconfig:"SOURCE_VCENTER_CREDS_FILE"`

	DestHost      string `envconfig:"DEST_VCENTER_HOST" required:"true"`
	DestUsername  string `envconfig:"DEST_VCENTER_USERNAME" required:"true"`
	DestPassword  string `envconfig:"DEST_VCENTER_PASSWORD"`
	DestInsecure  bool   `envconfig:"DEST_VCENTER_INSECURE"`
	DestCredsFile string `envconfig:"DEST_VCENTER_CREDS_FILE"`

	DestCluster     string `envconfig:"DEST_CLUSTER" required:"true"`
	BatchFile       string `envconfig:"BATCH_FILE" required:"true"`
	ContinueOnError bool   `envconfig:"CONTINUE_ON_ERROR"`

	ShortPollSeconds int `envconfig:"SHORT_POLL_SECONDS" default:"2"`
	ShortPollMax     int `envconfig:"SHORT_POLL_MAX" default:"30"`
	LongPollSeconds  int `envconfig:"LONG_POLL_SECONDS" default:"120"`
	LongPollMax      int `envconfig:"LONG_POLL_MAX" default:"120"`
	GuestWaitMax     int `envconfig:"GUEST_WAIT_MAX_POLLS" default:"120"`
	PingAttempts     int `envconfig:"PING_ATTEMPTS" default:"3"`
}

func main() {
	klog.InitFlags(nil)
	encryptCreds := flag.String("encrypt-creds", "", "write an encrypted credentials file to the given path and exit")
	flag.Parse()
	defer klog.Flush()

	if *encryptCreds != "" {
		if err := writeCredsFile(*encryptCreds); err != nil {
			klog.Fatalf("Failed to write credentials file: %v", err)
		}
		klog.Infof("Credentials written to %s", *encryptCreds)
		return
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		klog.Fatalf("Failed to read configuration: %v", err)
	}

	ctx := context.Background()
	src, err := connect(ctx, "source", cfg.SourceHost, cfg.SourceUsername, cfg.SourcePassword, cfg.SourceCredsFile, cfg.SourceInsecure)
	if err != nil {
		klog.Fatalf("Failed to connect to source vCenter: %v", err)
	}
	dst, err := connect(ctx, "destination", cfg.DestHost, cfg.DestUsername, cfg.DestPassword, cfg.DestCredsFile, cfg.DestInsecure)
	if err != nil {
		klog.Fatalf("Failed to connect to destination vCenter: %v", err)
	}

	requests, err := batch.LoadFile(cfg.BatchFile)
	if err != nil {
		klog.Fatalf("Failed to load batch file: %v", err)
	}
	klog.Infof("Loaded %d migration requests from %s", len(requests), cfg.BatchFile)

	m := migrate.NewMigration(platform.NewVSphereClient(src), platform.NewVSphereClient(dst), cfg.DestCluster)
	m.ShortPoll = monitor.PollSpec{Interval: time.Duration(cfg.ShortPollSeconds) * time.Second, MaxPolls: cfg.ShortPollMax}
	m.LongPoll = monitor.PollSpec{Interval: time.Duration(cfg.LongPollSeconds) * time.Second, MaxPolls: cfg.LongPollMax}
	m.GuestPoll.MaxPolls = cfg.GuestWaitMax
	m.PingAttempts = cfg.PingAttempts

	results, err := migrate.RunBatch(ctx, requests, m, migrate.BatchOptions{ContinueOnError: cfg.ContinueOnError})
	migrate.LogSummary(results)
	if err != nil {
		klog.Errorf("Batch did not complete cleanly: %v", err)
		klog.Flush()
		os.Exit(1)
	}
}

// connect authenticates one endpoint and logs the certificate thumbprint
// so the operator can confirm which vCenter the batch is talking to.
func connect(ctx context.Context, role, host, username, password, credsFile string, insecure bool) (*vcenter.VCenterClient, error) {
	resolved, err := creds.ResolvePassword(host, password, credsFile)
	if err != nil {
		return nil, err
	}
	client, err := vcenter.VCenterClientBuilder(ctx, username, resolved, host, insecure)
	if err != nil {
		return nil, err
	}
	klog.Infof("Connected to %s vCenter %s", role, host)

	thumbprint, err := vcenter.GetThumbprint(host)
	if err != nil {
		klog.Warningf("Could not read thumbprint of %s: %v", host, err)
		return client, nil
	}
	klog.Infof("%s vCenter thumbprint: %s", role, thumbprint)
	return client, nil
}

func writeCredsFile(path string) error {
	password, err := creds.PromptSecret("Password to store")
	if err != nil {
		return err
	}
	passphrase, err := creds.PromptSecret("Passphrase")
	if err != nil {
		return err
	}
	return creds.WriteFile(path, string(password), passphrase)
}
