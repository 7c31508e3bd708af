package cart

import (
	"fmt"
	"math"

	"pcstore/internal/models"
)

// BottleneckThreshold is the largest power score gap still considered balanced.
const BottleneckThreshold = 20

const (
	msgMissingComponents = "At least one CPU and one GPU are required in the cart to calculate the balance."
	msgBalanced          = "The balance between the CPU and the GPU is good. Well balanced components!"
	msgWeakGPU           = "Bottleneck detected! The GPU (%s) is significantly less powerful and may limit the performance of the CPU (%s)."
	msgWeakCPU           = "Bottleneck detected! The CPU (%s) is significantly less powerful and may limit the performance of the GPU (%s)."
)

// BottleneckAnalysis compares the strongest CPU and the strongest GPU in the cart.
func (c *Cart) BottleneckAnalysis() models.BottleneckReport {
	cpu := c.strongest(models.CategoryCPU)
	gpu := c.strongest(models.CategoryGPU)
	if cpu == nil || gpu == nil {
		return models.BottleneckReport{Message: msgMissingComponents}
	}
	return Analyze(*cpu, *gpu)
}

// Analyze applies the balance heuristic to a CPU and GPU pair.
func Analyze(cpu, gpu models.CartLine) models.BottleneckReport {
	report := models.BottleneckReport{CPU: &cpu, GPU: &gpu}

	diff := math.Abs(cpu.PowerScore - gpu.PowerScore)
	if diff <= BottleneckThreshold {
		report.Message = msgBalanced
		return report
	}

	report.IsBottleneck = true
	if cpu.PowerScore > gpu.PowerScore {
		report.Message = fmt.Sprintf(msgWeakGPU, gpu.Name, cpu.Name)
	} else {
		report.Message = fmt.Sprintf(msgWeakCPU, cpu.Name, gpu.Name)
	}
	return report
}

// strongest returns the line of the given category with the highest power
// score; ties keep the first line in insertion order.
func (c *Cart) strongest(category models.Category) *models.CartLine {
	var best *models.CartLine
	for _, l := range c.lines {
		if l.Category != category {
			continue
		}
		if best == nil || l.PowerScore > best.PowerScore {
			v := l.view()
			best = &v
		}
	}
	return best
}
