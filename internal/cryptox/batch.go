package cryptox

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DecryptAll decrypts blobs concurrently and returns the plaintexts in input
// order. It fails closed: if any blob fails, no plaintext is returned at all.
func DecryptAll(ctx context.Context, blobs []string, k Key) ([]string, error) {
	return mapAll(ctx, blobs, func(s string) (string, error) { return Decrypt(s, k) }, "decrypt")
}

// EncryptAll encrypts plaintexts concurrently, preserving order.
func EncryptAll(ctx context.Context, plaintexts []string, k Key) ([]string, error) {
	return mapAll(ctx, plaintexts, func(s string) (string, error) { return Encrypt(s, k) }, "encrypt")
}

func mapAll(ctx context.Context, in []string, fn func(string) (string, error), op string) ([]string, error) {
	out := make([]string, len(in))

	g, ctx := errgroup.WithContext(ctx)
	for i, s := range in {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(s)
			if err != nil {
				return fmt.Errorf("%s slide #%d: %w", op, i+1, err)
			}
			out[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
