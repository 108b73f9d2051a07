package reconcile

import (
	"testing"

	"github.com/arbor-sync/arbor/pkg/mirror/detect"
	"github.com/arbor-sync/arbor/pkg/mirror/entry"
)

func file(inode uint64) entry.State {
	return entry.State{Kind: entry.KindFile, Token: entry.Token{Inode: inode}}
}

func TestGuessWithPreviousSingleChangeIsMaster(t *testing.T) {
	difference := detect.Difference{
		PreviousState: []entry.State{file(1), file(1), file(1)},
		CurrentState:  []entry.State{file(2), file(1), file(1)},
	}
	master, ok := Guess(difference).IsPropagateFromMaster()
	if !ok || master != 0 {
		t.Fatalf("expected replica 0 to be master, got op=%v", Guess(difference))
	}
}

func TestGuessWithPreviousMultipleChangesConflict(t *testing.T) {
	difference := detect.Difference{
		PreviousState: []entry.State{file(1), file(1), file(1)},
		CurrentState:  []entry.State{file(2), file(3), file(1)},
	}
	if Guess(difference) != ChangedOnMultipleReplicas {
		t.Fatalf("expected ChangedOnMultipleReplicas, got %v", Guess(difference))
	}
}

func TestGuessWithoutPreviousSingleExistingIsMaster(t *testing.T) {
	difference := detect.Difference{
		CurrentState: []entry.State{entry.Empty, file(1), entry.Empty},
	}
	master, ok := Guess(difference).IsPropagateFromMaster()
	if !ok || master != 1 {
		t.Fatalf("expected replica 1 to be master, got %v", Guess(difference))
	}
}

func TestGuessWithoutPreviousMultipleExistingDiffers(t *testing.T) {
	difference := detect.Difference{
		CurrentState: []entry.State{file(1), file(2), entry.Empty},
	}
	if Guess(difference) != DiffersWithNoArchive {
		t.Fatalf("expected DiffersWithNoArchive, got %v", Guess(difference))
	}
}

func TestOperationString(t *testing.T) {
	if PropagateFromMaster(0).String() != "propagate from master" {
		t.Fatal("unexpected String() for PropagateFromMaster")
	}
	if ChangedOnMultipleReplicas.String() != "changed on multiple replicas" {
		t.Fatal("unexpected String() for ChangedOnMultipleReplicas")
	}
	if DiffersWithNoArchive.String() != "differs with no archive" {
		t.Fatal("unexpected String() for DiffersWithNoArchive")
	}
}
