// Package hcl provides the HCL implementation of config.Loader. It is
// responsible for discovering configuration files, parsing them, evaluating
// expressions and overlaying the decoded values onto a config.Model.
//
// A configuration file may contain any of the following blocks; every
// attribute is optional and missing ones keep their previous value:
//
//	grouping {
//	  similarity_threshold = 0.8
//	  max_group_size       = 8
//	}
//
//	refine {
//	  categorical_cutoff = 10
//	  cv_threshold       = 0.3
//	  workers            = max(1, cpus - 1)
//	}
//
//	balance {
//	  min_group_size    = 2
//	  target_group_size = 4
//	  remainder         = "clamp"
//	}
//
//	resources {
//	  avg_reads_per_sample = 10000000
//	  profile "co-assembly" {
//	    memory_reads_per_gb = 2000000
//	    memory_min_gb       = 16
//	    memory_max_gb       = 64
//	  }
//	}
//
//	inputs {
//	  similarity_dir  = "results/similarity_analysis"
//	  variable_dir    = "results/variable_analysis"
//	  metadata        = "examples/metadata_template.csv"
//	  p_value_max     = 0.05
//	  effect_size_min = 0.1
//	}
//
//	output {
//	  dir          = "results/coassembly_groups"
//	  format       = "json"
//	  metrics_file = ""
//	}
//
// Expressions can call min, max, floor and ceil and read the variable cpus.
// When a directory is given, every .hcl file below it is applied in
// lexicographic path order.
package hcl
