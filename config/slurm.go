package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type PartitionType string

const (
	PartitionCore PartitionType = "core"
	PartitionNode PartitionType = "node"
)

// Duration parses Go duration strings ("2h", "30m") from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	dur, err := time.ParseDuration(value.Value)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// SlurmConfig contains info needed to launch pipeline stages as jobs on a
// SLURM cluster. A zero Project means stages run locally.
type SlurmConfig struct {
	Project   string        `yaml:"project"`
	Partition PartitionType `yaml:"partition"`
	Cores     int           `yaml:"cores"`
	RunTime   Duration      `yaml:"run_time"`
	Threads   int           `yaml:"threads"`
}

// Enabled reports whether stages should be submitted via salloc.
func (sc SlurmConfig) Enabled() bool {
	return sc.Project != ""
}

// AsSallocString returns the salloc prefix to prepend to a stage command,
// with the given job name.
func (sc SlurmConfig) AsSallocString(jobName string) string {
	return fmt.Sprintf("salloc -A %s -p %s -n %d -t %s -J %s srun -n 1 -c %d ",
		sc.Project,
		sc.Partition,
		sc.Cores,
		fmtDuration(time.Duration(sc.RunTime)),
		jobName,
		sc.Threads)
}

func fmtDuration(t time.Duration) string {
	t = t.Round(time.Second)
	d := t / (24 * time.Hour)
	t -= d * (24 * time.Hour)
	h := t / time.Hour
	t -= h * time.Hour
	m := t / time.Minute
	t -= m * time.Minute
	s := t / time.Second
	return fmt.Sprintf("%d-%02d:%02d:%02d", d, h, m, s)
}
