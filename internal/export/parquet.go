// Package export writes stored routes to Parquet files and optionally ships
// them to S3-compatible object storage.
package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"route-analytics-service/internal/routes/core/domain"
)

// RouteRow is the Parquet layout of one route record.
type RouteRow struct {
	// ID is the route UUID in canonical text form
	ID string `parquet:"id,snappy"`

	// RouteDate is the route instant in UTC
	RouteDate time.Time `parquet:"route_date,snappy"`

	Airline     string `parquet:"airline,dict,snappy"`
	Origin      string `parquet:"origin,dict,snappy"`
	Destination string `parquet:"destination,dict,snappy"`

	Delays         float64 `parquet:"delays,snappy"`
	Cancelled      float64 `parquet:"cancelled,snappy"`
	PassengerCount float64 `parquet:"passenger_count,snappy"`
	FlightCount    float64 `parquet:"flight_count,snappy"`
}

// ToRows converts routes to their Parquet rows, preserving order.
func ToRows(routes []domain.Route) []RouteRow {
	rows := make([]RouteRow, len(routes))
	for i, r := range routes {
		rows[i] = RouteRow{
			ID:             r.ID.String(),
			RouteDate:      r.Date.UTC(),
			Airline:        r.Airline,
			Origin:         r.Origin,
			Destination:    r.Destination,
			Delays:         r.Delays,
			Cancelled:      r.Cancelled,
			PassengerCount: r.PassengerCount,
			FlightCount:    r.FlightCount,
		}
	}
	return rows
}

// WriteRoutes encodes routes as a complete Parquet file on w.
func WriteRoutes(w io.Writer, routes []domain.Route) error {
	writer := parquet.NewGenericWriter[RouteRow](w)

	if _, err := writer.Write(ToRows(routes)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write routes to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRoutesFile creates (or truncates) path and writes routes to it.
func WriteRoutesFile(path string, routes []domain.Route) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteRoutes(file, routes); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
