package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	filterdomain "route-analytics-service/internal/filter/core/domain"
	filterUsecase "route-analytics-service/internal/filter/core/usecase"
	"route-analytics-service/internal/platform/timeutil"
)

var aggregateFlags struct {
	from, to     string
	x, y         string
	timestep     string
	airlines     []string
	destinations []string
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Aggregate stored routes and print the chart matrix.",
	Example: `  route-analytics aggregate --from 2014-01-01 --to 2015-01-01 --timestep MONTH --x AIRLINE --y FLIGHTS
  route-analytics aggregate --from 2014-01-01 --to 2014-01-08 --timestep DAY_OF_WEEK --x TIME --y PASSENGERS`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, err := aggregateInput()
		if err != nil {
			return err
		}

		db, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		repos, err := newRepositories(db, cfg.DB.Backend)
		if err != nil {
			return err
		}

		res, err := filterUsecase.NewFilterRoutesUseCase(repos.routes, nil).Execute(cmd.Context(), in)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), res)
	},
}

func init() {
	f := aggregateCmd.Flags()
	f.StringVar(&aggregateFlags.from, "from", "", "range start, inclusive (YYYY-MM-DD or RFC 3339)")
	f.StringVar(&aggregateFlags.to, "to", "", "range end, exclusive (YYYY-MM-DD or RFC 3339)")
	f.StringVar(&aggregateFlags.x, "x", "TIME", "category axis: TIME, AIRLINE or DESTINATION")
	f.StringVar(&aggregateFlags.y, "y", "FLIGHTS", "metric: FLIGHTS, PASSENGERS, DELAY_FREQUENCY, CANCELLATIONS")
	f.StringVar(&aggregateFlags.timestep, "timestep", "MONTH", "granularity: DAY_OF_WEEK, WEEK_OF_YEAR, MONTH, MONTH_OF_YEAR, YEAR")
	f.StringSliceVar(&aggregateFlags.airlines, "airline", nil, "restrict to airlines (repeatable)")
	f.StringSliceVar(&aggregateFlags.destinations, "destination", nil, "restrict to destinations (repeatable)")
	_ = aggregateCmd.MarkFlagRequired("from")
	_ = aggregateCmd.MarkFlagRequired("to")
}

func aggregateInput() (filterUsecase.FilterInput, error) {
	from, err := timeutil.ParseDate(aggregateFlags.from)
	if err != nil {
		return filterUsecase.FilterInput{}, fmt.Errorf("--from: %w", err)
	}
	to, err := timeutil.ParseDate(aggregateFlags.to)
	if err != nil {
		return filterUsecase.FilterInput{}, fmt.Errorf("--to: %w", err)
	}

	return filterUsecase.FilterInput{
		RangeFrom: from,
		RangeTo:   to,
		Axis:      &filterUsecase.AxisInput{X: aggregateFlags.x, Y: aggregateFlags.y},
		Filter: &filterUsecase.FilterSpec{
			Timestep:     aggregateFlags.timestep,
			Airlines:     aggregateFlags.airlines,
			Destinations: aggregateFlags.destinations,
		},
	}, nil
}

// printResult renders one row per category and one column per bucket label.
func printResult(w io.Writer, res filterdomain.Result) error {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintf(w, "%s by %s (%s)\n", res.Metric, res.Axis, res.Granularity)

	if len(res.Labels) == 0 {
		color.New(color.FgHiBlack).Fprintln(w, "empty range, no buckets")
		return nil
	}

	table := tablewriter.NewWriter(w)

	headers := append([]string{"Category"}, res.Labels...)
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(res.Categories))
	for _, name := range res.Categories {
		row := make([]string, 0, len(res.Labels)+1)
		row = append(row, name)
		for _, v := range res.Data[name] {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
