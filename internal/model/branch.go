// internal/model/branch.go
package model

import "sort"

// Branches maps branch numbers to branch names.
var Branches = map[int]string{
    1: "Cambridge", 2: "North Canton", 3: "Gallipolis", 4: "Dublin", 5: "Monroe", 6: "Burlington",
    7: "Perrysburg", 9: "Brunswick", 11: "Mentor", 12: "Fort Wayne", 13: "Indianapolis", 14: "Mansfield",
    15: "Heath", 16: "Marietta", 17: "Evansville", 18: "Brilliant", 19: "Holt", 20: "Novi", 24: "South Charleston",
}

// BranchNumbers returns the branch numbers in ascending order.
func BranchNumbers() []int {
    nums := make([]int, 0, len(Branches))
    for n := range Branches {
        nums = append(nums, n)
    }
    sort.Ints(nums)
    return nums
}

func BranchName(n int) string {
    if name, ok := Branches[n]; ok {
        return name
    }
    return "Unknown"
}
