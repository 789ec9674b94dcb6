package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Client wraps the Firestore SDK client behind the Querier interface.
type Client struct {
	fs *firestore.Client
}

// InitFirestore builds the Firestore client from a service-account
// credential. credJSON (serialized credential) takes precedence over
// credFile; with an empty projectID the project is detected from the
// credential.
func InitFirestore(ctx context.Context, projectID, credFile, credJSON string) (*Client, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	var opts []option.ClientOption
	switch {
	case credJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	case credFile != "":
		opts = append(opts, option.WithCredentialsFile(credFile))
	}
	fs, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Client{fs: fs}, nil
}

func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) Query(ctx context.Context, collection, field, value string, limit int, window Window) ([]Document, error) {
	q := c.fs.Collection(collection).Where(field, "==", value)
	if window.Days > 0 {
		since := time.Now().AddDate(0, 0, -window.Days)
		q = q.Where(window.Field, ">=", since)
	}
	iter := q.Limit(limit).Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stream %s where %s == %q: %w", collection, field, value, err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}
