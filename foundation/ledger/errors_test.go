package ledger

import (
	"errors"
	"fmt"
	"testing"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_Classify(t *testing.T) {
	t.Log("Given the need to separate node failures from contract refusals.")
	{
		t.Log("\tTest 0:\tWhen the node reports a reverted execution.")
		{
			err := classify("getProject", errors.New("execution reverted: project does not exist"))

			if !IsRejected(err) {
				t.Fatalf("\t%s\tTest 0:\tShould classify the error as rejected: %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould classify the error as rejected.", success)

			if IsUnavailable(err) {
				t.Fatalf("\t%s\tTest 0:\tShould not also classify it as unavailable.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not also classify it as unavailable.", success)
		}

		t.Log("\tTest 1:\tWhen the node cannot be reached.")
		{
			err := classify("getProjectFundings", errors.New("dial tcp: connection refused"))

			if !IsUnavailable(err) {
				t.Fatalf("\t%s\tTest 1:\tShould classify the error as unavailable: %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould classify the error as unavailable.", success)
		}

		t.Log("\tTest 2:\tWhen the classified error is wrapped further.")
		{
			cause := errors.New("execution reverted")
			err := fmt.Errorf("ledger read: chainID[42]: %w", classify("getProject", cause))

			if !IsRejected(err) {
				t.Fatalf("\t%s\tTest 2:\tShould find the classification through wrapping.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould find the classification through wrapping.", success)

			if !errors.Is(err, cause) {
				t.Fatalf("\t%s\tTest 2:\tShould unwrap to the underlying RPC error.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould unwrap to the underlying RPC error.", success)
		}
	}
}
