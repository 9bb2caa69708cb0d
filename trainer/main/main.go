package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/sw965/sda/dataset"
	"github.com/sw965/sda/trainer"
)

func main() {
	configPath := flag.String("config", "", "JSON config file (default parameters if empty)")
	mnistDir := flag.String("mnist", "", "directory with the MNIST IDX files")
	prDir := flag.String("pr", "", "directory with pattern2learn.dat and pattern2recog.dat")
	logPath := flag.String("log", "", "also write the log to this file")
	auto := flag.Bool("auto", false, "decide the number of neurons automatically")
	saveConfig := flag.String("save-config", "", "write the effective config to this file and exit")
	flag.Parse()

	cfg := trainer.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = trainer.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *auto && cfg.AutoNeurons == nil {
		cfg.AutoNeurons = trainer.DefaultAutoNeuronsConfig()
	}
	if *saveConfig != "" {
		if err := cfg.Save(*saveConfig); err != nil {
			log.Fatal(err)
		}
		return
	}

	var out io.Writer = os.Stdout
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = io.MultiWriter(os.Stdout, f)
	}
	logger := log.New(out, "", log.LstdFlags)

	var sets *dataset.LearningSet
	var err error
	switch {
	case *mnistDir != "" && *prDir != "":
		log.Fatal("use only one of -mnist and -pr")
	case *mnistDir != "":
		sets, err = dataset.LoadMNIST(*mnistDir)
	case *prDir != "":
		sets, err = dataset.LoadPR(*prDir)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
	logger.Printf("data: training=%d validation=%d test=%d classes=%d\n",
		sets.Training.Len(), sets.Validation.Len(), sets.Test.Len(), sets.ClassCount)

	start := time.Now()
	_, reports, result, err := trainer.Run(sets, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range reports {
		logger.Printf("layer %d: neurons=%d final cost=%f best cost=%f (epoch %d)\n", r.Index, r.Neurons, r.FinalCost(), r.BestCost(), r.BestEpoch())
	}
	fmt.Fprintf(out, "Optimization complete with best validation score of %f %%, on epoch %d, with test performance %f %%\n",
		result.BestValidationError*100.0, result.BestEpoch, result.TestError*100.0)
	fmt.Fprintf(out, "Elapsed time: %v\n", time.Since(start))
}
