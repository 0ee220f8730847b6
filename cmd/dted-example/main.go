package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/twpayne/go-dted"
)

func run() error {
	dtedPath := flag.String("dted-path", os.Getenv("DTED_PATH"), "path to DTED data")
	flag.Parse()

	if flag.NArg() != 2 {
		return errors.New("syntax: dted-example latitude longitude")
	}
	lat, err := strconv.ParseFloat(flag.Arg(0), 64)
	if err != nil {
		return err
	}
	lon, err := strconv.ParseFloat(flag.Arg(1), 64)
	if err != nil {
		return err
	}

	es, err := dted.NewElevationService(os.DirFS(*dtedPath))
	if err != nil {
		return err
	}

	coords := [][]float64{{lon, lat}}
	elevations, err := es.Elevation(coords)
	if err != nil {
		return err
	}
	fmt.Println(elevations[0])

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
