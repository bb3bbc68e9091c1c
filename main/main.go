package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ssc5/pentrack/config"
	"github.com/ssc5/pentrack/field"
	"github.com/ssc5/pentrack/geom"
	"github.com/ssc5/pentrack/mc"
	"github.com/ssc5/pentrack/particle"
	"github.com/ssc5/pentrack/source"
)

var log = config.NamedLogger("main")

var (
	configFile   string
	geometryFile string
	outFile      string
	nParticles   int
	bField       float64
)

func main() {
	// A .env file may override defaults, e.g. PENTRACK_CONFIG.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "pentrack-source",
		Short: "sample initial particle states from a configured source",
	}

	sample := &cobra.Command{
		Use:   "sample",
		Short: "draw initial states and write them as a text table",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample()
		},
	}
	sample.Flags().StringVarP(&configFile, "config", "c",
		envOr("PENTRACK_CONFIG", "source.in"), "configuration file")
	sample.Flags().StringVarP(&geometryFile, "geometry", "g", "",
		"STL file with the full simulation geometry (required for surface sources)")
	sample.Flags().StringVarP(&outFile, "out", "o", "states.txt",
		"output table")
	sample.Flags().IntVarP(&nParticles, "n", "n", 1000,
		"number of particles to sample")
	sample.Flags().Float64VarP(&bField, "bfield", "b", 0,
		"homogeneous magnetic field magnitude in T")

	example := &cobra.Command{
		Use:   "example-config",
		Short: "print an example configuration file",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.Example)
		},
	}

	root.AddCommand(sample, example)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runSample() error {
	cfg, err := config.Read(configFile)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	gen, err := mc.NewGenerator(settings)
	if err != nil {
		return err
	}

	geo := &geom.Geometry{}
	if geometryFile != "" {
		if geo, err = geom.LoadGeometry(geometryFile); err != nil {
			return err
		}
	}

	src, err := source.New(cfg.SourceEntry(), geo)
	if err != nil {
		return err
	}
	fld := &field.Uniform{B: bField}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "# id t x y z Ekin phi theta pol px py pz")
	sampled, skipped := 0, 0
	for i := 0; i < nParticles; i++ {
		p := src.CreateParticle(gen, fld)
		if p.Status == particle.StatusInitialNotFound {
			skipped++
			continue
		}
		mom := p.Momentum()
		fmt.Fprintf(f, "%d %g %g %g %g %g %g %g %d %g %g %g\n",
			p.ID, p.Time, p.Pos[0], p.Pos[1], p.Pos[2],
			p.Ekin, p.Phi, p.Theta, p.Polarisation,
			mom.Px(), mom.Py(), mom.Pz())
		sampled++
	}

	log.Infof("wrote %d states to %s (%d skipped)", sampled, outFile, skipped)
	return nil
}
