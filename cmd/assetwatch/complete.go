package main

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion. Install with
// COMP_INSTALL=1 assetwatch.
func completion() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
		},
		Sub: map[string]*complete.Command{
			"serve": {
				Flags: map[string]complete.Predictor{
					"addr": predict.Something,
					"mock": predict.Nothing,
				},
			},
			"show": {
				Flags: map[string]complete.Predictor{
					"equity": predict.Something,
					"crypto": predict.Set{"BTC", "ETH", "SOL", "XRP", "ADA"},
					"plain":  predict.Nothing,
					"mock":   predict.Nothing,
					"style":  predict.Set{"auto", "dark", "light", "notty", "ascii"},
					"width":  predict.Something,
				},
			},
			"help":  {},
			"flags": {},
		},
	}
}
