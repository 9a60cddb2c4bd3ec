package problems

import (
	"context"
	"strconv"
	"strings"

	"github.com/MarcusPreston/solvetrack/internal/models"
)

// The seeded catalog. Answers are computed rather than hard-coded so the
// validator and the puzzle statement cannot drift apart.

// exactAnswer builds a validator comparing the candidate against a known
// answer string. Candidates are compared as strings because some problems
// have answers that do not fit in a number.
func exactAnswer(answer string) Validator {
	return ValidatorFunc(func(ctx context.Context, candidate string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		return strings.TrimSpace(candidate) == answer, nil
	})
}

// sumMultiplesBelow sums the natural numbers below limit divisible by 3 or 5.
func sumMultiplesBelow(limit int) int {
	sum := 0
	for n := 1; n < limit; n++ {
		if n%3 == 0 || n%5 == 0 {
			sum += n
		}
	}
	return sum
}

// sumEvenFibonacciBelow sums the even Fibonacci numbers not exceeding limit.
func sumEvenFibonacciBelow(limit int) int {
	sum := 0
	a, b := 1, 2
	for a <= limit {
		if a%2 == 0 {
			sum += a
		}
		a, b = b, a+b
	}
	return sum
}

// largestPrimeFactor finds the largest prime factor of n by trial division.
func largestPrimeFactor(n int64) int64 {
	var largest int64 = 1
	for n%2 == 0 {
		largest = 2
		n /= 2
	}
	for factor := int64(3); factor*factor <= n; factor += 2 {
		for n%factor == 0 {
			largest = factor
			n /= factor
		}
	}
	if n > 1 {
		largest = n
	}
	return largest
}

const eulerLicense = "This work is licensed under a Creative Commons Attribution-NonCommercial-ShareAlike 4.0 International License."

// DefaultRegistry returns the registry of shipped problems.
func DefaultRegistry() *Registry {
	registry := NewRegistry()

	definitions := []Definition{
		{
			Metadata: models.Problem{
				ProblemID: 1,
				Title:     "Multiples of 3 or 5",
				Description: "<p>If we list all the natural numbers below 10 that are multiples of 3 or 5, we get 3, 5, 6 and 9. The sum of these multiples is 23.</p>\n" +
					"<p>Find the sum of all the multiples of 3 or 5 below 1000.</p>",
				URL:     "https://projecteuler.net/problem=1",
				License: eulerLicense,
			},
			Validator: exactAnswer(strconv.Itoa(sumMultiplesBelow(1000))),
		},
		{
			Metadata: models.Problem{
				ProblemID: 2,
				Title:     "Even Fibonacci numbers",
				Description: "<p>Each new term in the Fibonacci sequence is generated by adding the previous two terms. By starting with 1 and 2, the first 10 terms will be: 1, 2, 3, 5, 8, 13, 21, 34, 55, 89.</p>\n" +
					"<p>By considering the terms in the Fibonacci sequence whose values do not exceed four million, find the sum of the even-valued terms.</p>",
				URL:     "https://projecteuler.net/problem=2",
				License: eulerLicense,
			},
			Validator: exactAnswer(strconv.Itoa(sumEvenFibonacciBelow(4_000_000))),
		},
		{
			Metadata: models.Problem{
				ProblemID: 3,
				Title:     "Largest prime factor",
				Description: "<p>The prime factors of 13195 are 5, 7, 13 and 29.</p>\n" +
					"<p>What is the largest prime factor of the number 600851475143 ?</p>",
				URL:     "https://projecteuler.net/problem=3",
				License: eulerLicense,
			},
			Validator: exactAnswer(strconv.FormatInt(largestPrimeFactor(600851475143), 10)),
		},
	}

	for _, def := range definitions {
		if err := registry.Register(def); err != nil {
			// Definitions above are static; a failure here is a
			// programming error.
			panic(err)
		}
	}

	return registry
}
