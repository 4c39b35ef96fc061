package language

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// tableRef matches project.dataset.table style references.
var tableRef = regexp.MustCompile(`^[A-Za-z0-9_\-]+(\.[A-Za-z0-9_\-]+){1,2}$`)

// rowIterator is the part of *bigquery.RowIterator the provider reads.
type rowIterator interface {
	Next(dst any) error
}

type wordRow struct {
	Word string `bigquery:"word"`
}

// BigQueryProvider reads word lists from a BigQuery table with a `word` and a
// `language` column. Alphabets are small and change rarely, so they still come
// from the letters provider.
type BigQueryProvider struct {
	table   string
	letters Provider
	read    func(ctx context.Context, sql string, params []bigquery.QueryParameter) (rowIterator, error)
}

// NewBigQueryProvider queries table through client and takes alphabets from letters.
func NewBigQueryProvider(client *bigquery.Client, table string, letters Provider) (*BigQueryProvider, error) {
	if err := CheckTableRef(table); err != nil {
		return nil, err
	}
	return &BigQueryProvider{
		table:   table,
		letters: letters,
		read: func(ctx context.Context, sql string, params []bigquery.QueryParameter) (rowIterator, error) {
			q := client.Query(sql)
			q.Parameters = params
			it, err := q.Read(ctx)
			if err != nil {
				return nil, err
			}
			return it, nil
		},
	}, nil
}

// CheckTableRef rejects anything but a dataset.table or project.dataset.table
// reference, since the table name is spliced into SQL.
func CheckTableRef(table string) error {
	if !tableRef.MatchString(table) {
		return fmt.Errorf("invalid BigQuery table reference %q", table)
	}
	return nil
}

func (p *BigQueryProvider) Load(ctx context.Context, cultureCode string, withLemmata bool) (*Data, error) {
	data, err := p.letters.Load(ctx, cultureCode, false)
	if err != nil {
		return nil, err
	}
	if !withLemmata {
		return data, nil
	}

	codes := FallbackCodes(cultureCode)
	for _, code := range codes {
		words, err := p.queryWords(ctx, code)
		if err != nil {
			return nil, err
		}
		if len(words) > 0 {
			data.Lemmata = words
			return data, nil
		}
	}
	return nil, &NotFoundError{Code: cultureCode, Tried: codes}
}

func (p *BigQueryProvider) queryWords(ctx context.Context, code string) ([]string, error) {
	sql := fmt.Sprintf("SELECT word FROM `%s` WHERE language = @language ORDER BY word", p.table)
	it, err := p.read(ctx, sql, []bigquery.QueryParameter{{Name: "language", Value: code}})
	if err != nil {
		return nil, fmt.Errorf("query words for %s: %w", code, err)
	}

	var words []string
	for {
		var row wordRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read words for %s: %w", code, err)
		}
		if row.Word != "" {
			words = append(words, Upper(code, row.Word))
		}
	}
	return words, nil
}
