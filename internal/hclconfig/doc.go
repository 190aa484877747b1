// Package hclconfig loads loot documents written in HCL.
//
//	ignore_containers = ["cntDev"]
//
//	prob_templates {
//	  template "T1" {
//	    level {
//	      level = "0,50"
//	      prob  = 0.5
//	    }
//	  }
//	}
//
//	quality_templates {
//	  template "QL1" {
//	    level {
//	      level = 1
//	      prob  = 0.3
//	    }
//	  }
//	}
//
//	group "groupTools" {
//	  count = "2,1"
//	  entry {
//	    name          = "hammer"
//	    prob_template = "T1"
//	  }
//	  entry {
//	    group = "groupNails"
//	    count = [3, 1]
//	  }
//	}
//
//	container "cntToolbox" {
//	  count = "all"
//	  entry { group = "groupTools" }
//	}
//
// Attribute values may be strings, numbers, bools or, for ranges, a tuple of
// numbers; all are converted to the raw strings of the config package.
package hclconfig
