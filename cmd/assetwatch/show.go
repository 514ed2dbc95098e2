package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"AssetWatch/internal/collector"
	"AssetWatch/internal/model"
	"AssetWatch/internal/renderer"
	"AssetWatch/internal/session"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
)

type showCmd struct {
	equity string
	crypto string
	plain  bool
	mock   bool
	style  string
	width  int

	out io.Writer
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "fetch assets once and print their summary and details" }
func (*showCmd) Usage() string {
	return `assetwatch show [-equity AAPL,MSFT] [-crypto BTC,ETH] [-plain] [-mock]

  Runs a one-shot session: every symbol is added in order, failures are
  reported and skipped, then the summary and the per-asset tables are printed.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.equity, "equity", "", "Comma separated equity symbols.")
	f.StringVar(&c.crypto, "crypto", "", "Comma separated cryptocurrency symbols.")
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of styled terminal output.")
	f.BoolVar(&c.mock, "mock", false, "Use generated data instead of calling the providers.")
	f.StringVar(&c.style, "style", "", "Glamour style (dark, light, notty, ascii). Detected from the terminal when empty.")
	f.IntVar(&c.width, "width", 120, "Word wrap width of styled output.")
}

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer logx.Close()

	rec := openRecorder(cfg)
	defer rec.Close()

	col, err := newCollector(cfg, rec, c.mock)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	out, err := c.run(ctx, col)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprint(c.out, out)
	return subcommands.ExitSuccess
}

type request struct {
	kind   model.Kind
	symbol string
}

func splitSymbols(kind model.Kind, list string) []request {
	var reqs []request
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			reqs = append(reqs, request{kind: kind, symbol: s})
		}
	}
	return reqs
}

// run tracks every requested symbol in a fresh session and renders it.
func (c *showCmd) run(ctx context.Context, col *collector.Collector) (string, error) {
	reqs := append(splitSymbols(model.KindEquity, c.equity), splitSymbols(model.KindCrypto, c.crypto)...)
	if len(reqs) == 0 {
		return "", errors.New("nothing to show: pass -equity and/or -crypto")
	}

	sess := session.New(uuid.NewString(), time.Now())
	var b strings.Builder
	sess.Do(func(sess *session.Session) {
		for _, r := range reqs {
			if _, err := col.Track(ctx, sess, r.kind, r.symbol); err != nil {
				fmt.Fprintf(&b, "> %s\n\n", collector.UserMessage(err))
			}
		}

		series, err := sess.Registry.RenderSeries()
		if err != nil {
			b.WriteString("Add assets to see their performance.\n")
			return
		}
		b.WriteString(renderer.SeriesSummaryMarkdown(series))
		b.WriteString("\n")
		b.WriteString(renderer.DetailMarkdown(sess.Registry.RenderDetail()))
	})

	if c.plain {
		return b.String(), nil
	}
	style := c.style
	if style == "auto" {
		style = ""
	}
	return renderer.Terminal(b.String(), style, c.width)
}
