// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command figplot plots columnar data files.
//
// figplot reads whitespace-separated "x y [yerr]" rows from the input
// files (or standard input) and renders one curve or scatter per
// file. Lines starting with "#" are skipped. The output format is
// chosen by the -o extension.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/figkit/figkit"
)

func main() {
	log.SetPrefix("figplot: ")
	log.SetFlags(0)

	var (
		flagOut     = flag.String("o", "out.png", "write output to `file`")
		flagTitle   = flag.String("title", "", "figure title")
		flagXLabel  = flag.String("xlabel", "", "x axis label")
		flagYLabel  = flag.String("ylabel", "", "y axis label")
		flagStyle   = flag.String("style", "", "style preset name")
		flagScatter = flag.Bool("scatter", false, "plot points instead of lines")
		flagLogX    = flag.Bool("logx", false, "log scale x axis")
		flagLogY    = flag.Bool("logy", false, "log scale y axis")
		flagFit     = flag.Int("fit", -1, "overlay a polynomial fit of `degree`")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [inputs...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	fig := figkit.NewFigure()
	fig.Title = *flagTitle
	fig.XLabel = *flagXLabel
	fig.YLabel = *flagYLabel
	fig.LogX = *flagLogX
	fig.LogY = *flagLogY
	if *flagStyle != "" {
		if err := fig.SetStyle(*flagStyle); err != nil {
			log.Fatal(err)
		}
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		addInput(fig, "stdin", os.Stdin, *flagScatter, *flagFit)
	}
	for _, path := range inputs {
		f, err := os.Open(path)
		if err != nil {
			log.Fatal(err)
		}
		addInput(fig, path, f, *flagScatter, *flagFit)
		f.Close()
	}

	if err := fig.Save(*flagOut); err != nil {
		log.Fatal(err)
	}
}

func addInput(fig *figkit.Figure, name string, r io.Reader, scatter bool, fitDegree int) {
	xs, ys, yerrs, err := readColumns(r)
	if err != nil {
		log.Fatalf("%s: %v", name, err)
	}

	var src figkit.XYSource
	if scatter {
		s, err := figkit.NewScatter(xs, ys)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		s.Label = name
		if yerrs != nil {
			if err := s.SetErrorBars(nil, yerrs); err != nil {
				log.Fatalf("%s: %v", name, err)
			}
		}
		fig.AddElements(s)
		src = s
	} else {
		c, err := figkit.NewCurve(xs, ys)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		c.Label = name
		if yerrs != nil {
			if err := c.SetErrorBars(nil, yerrs); err != nil {
				log.Fatalf("%s: %v", name, err)
			}
		}
		fig.AddElements(c)
		src = c
	}

	if fitDegree >= 0 {
		fit, err := figkit.FitPolynomial(src, fitDegree)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		fit.Label = fmt.Sprintf("%s (degree %d fit)", name, fitDegree)
		fit.Style.LineStyle = figkit.String("dashed")
		fig.AddElements(fit)
	}
}

func readColumns(r io.Reader) (xs, ys, yerrs []float64, err error) {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, nil, nil, fmt.Errorf("line %d: need at least 2 columns", line)
		}
		vals := make([]float64, len(fields))
		for i, f := range fields {
			vals[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("line %d: %v", line, err)
			}
		}
		xs = append(xs, vals[0])
		ys = append(ys, vals[1])
		if len(vals) > 2 {
			yerrs = append(yerrs, vals[2])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, err
	}
	if len(xs) == 0 {
		return nil, nil, nil, fmt.Errorf("no data rows")
	}
	if yerrs != nil && len(yerrs) != len(xs) {
		return nil, nil, nil, fmt.Errorf("error column present on only some rows")
	}
	return xs, ys, yerrs, nil
}
