package modelstore

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/tsawler/twitsent"
	"github.com/valkey-io/valkey-go"
)

// KeyPrefix prefixes every model key written to Valkey.
const KeyPrefix = "twitsent:model:"

// ValkeyOptions configures the connection made by DialValkey.
type ValkeyOptions struct {
	Addr     string
	Password string
	TLS      bool
	TTL      time.Duration // zero keeps models forever
}

// Valkey stores encoded models under KeyPrefix+version.
type Valkey struct {
	client valkey.Client
	ttl    time.Duration
	logger *slog.Logger
}

// DialValkey connects to a Valkey server and pings it.
func DialValkey(ctx context.Context, opts ValkeyOptions) (*Valkey, error) {
	co := valkey.ClientOption{
		InitAddress:      []string{opts.Addr},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if opts.TLS {
		co.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client, err := valkey.NewClient(co)
	if err != nil {
		return nil, fmt.Errorf("[Valkey] failed to create client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[Valkey] failed to ping: %w", err)
	}

	return NewValkey(client, opts.TTL), nil
}

// NewValkey wraps an existing client.
func NewValkey(client valkey.Client, ttl time.Duration) *Valkey {
	return &Valkey{client: client, ttl: ttl, logger: slog.Default()}
}

// Key returns the Valkey key a version is stored under.
func Key(version string) string {
	return KeyPrefix + version
}

// Load implements twitsent.ModelRepository.
func (v *Valkey) Load(ctx context.Context, version string) (*twitsent.Model, error) {
	b, err := v.client.Do(ctx, v.client.B().Get().Key(Key(version)).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, twitsent.ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get model %s: %w", version, err)
	}

	m := new(twitsent.Model)
	if err := m.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("load model %s: %w", version, err)
	}
	return m, nil
}

// Save implements twitsent.ModelRepository.
func (v *Valkey) Save(ctx context.Context, version string, m *twitsent.Model) error {
	if err := twitsent.ValidateVersion(version); err != nil {
		return err
	}
	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}

	completed := []valkey.Completed{
		v.client.B().Set().Key(Key(version)).Value(valkey.BinaryString(b)).Build(),
	}
	if secs := int64(v.ttl / time.Second); secs > 0 {
		completed = append(completed, v.client.B().Expire().Key(Key(version)).Seconds(secs).Build())
	}
	for _, res := range v.client.DoMulti(ctx, completed...) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("set model %s: %w", version, err)
		}
	}

	v.logger.Info("[Valkey] saved model", slog.String("key", Key(version)), slog.Int("bytes", len(b)))
	return nil
}

// Close closes the underlying client.
func (v *Valkey) Close() {
	v.client.Close()
}
