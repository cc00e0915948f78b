package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/printshare/internal/clock"
	"github.com/viant/printshare/model"
	"github.com/viant/printshare/progress"
	"github.com/viant/printshare/runtime/timer"
	"github.com/viant/printshare/service/event"
	"github.com/viant/printshare/tracing"
)

// Interval is a single print turn.
type Interval struct {
	StudentID int       `json:"studentId"`
	GroupID   int       `json:"groupId"`
	PrinterID int       `json:"printerId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// Overlaps returns true when both intervals used the same printer at the same
// time.
func (i Interval) Overlaps(other Interval) bool {
	return i.PrinterID == other.PrinterID && i.Start.Before(other.End) && other.Start.Before(i.End)
}

// studentTask is the life of a single student: arrive, report ready, wait to
// be released, print, report completion.  The leader's task coordinates its
// group instead of waiting.
func (s *Service) studentTask(ctx context.Context, c *cohort, student *model.Student) error {
	// each task owns its timers
	arrivals := s.arrivals(student.ID)
	prints := s.prints(student.ID)

	if err := s.sleep(ctx, arrivals.Next()); err != nil {
		return fmt.Errorf("student %d: arriving: %w", student.ID, err)
	}
	progress.UpdateCtx(ctx, progress.Delta{Ready: 1})
	s.publish(event.NewEvent(event.KindStudent, event.NameReady, student.ID).WithGroup(c.group.ID))
	if c.barrier.MarkReady(student.ID) {
		s.publish(event.NewEvent(event.KindGroup, event.NameQuorum, c.group.ID).WithGroup(c.group.ID))
	}

	if c.group.IsLeader(student.ID) {
		return s.lead(ctx, c, student, prints)
	}

	if err := s.wakeups[student.ID].Wait(ctx); err != nil {
		return fmt.Errorf("student %d of group %d was never released: %w", student.ID, c.group.ID, err)
	}
	if err := s.print(ctx, c, student, prints); err != nil {
		return err
	}
	select {
	case c.finished <- student.ID:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("student %d: reporting completion: %w", student.ID, ctx.Err())
	}
}

// lead runs the group cycle: barrier, obtain, release members one by one,
// leave.  The printer is returned on every path once obtained.
func (s *Service) lead(ctx context.Context, c *cohort, leader *model.Student, prints timer.Source) (err error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("group-%d", c.group.ID), tracing.KindInternal)
	span.WithInt("group.id", c.group.ID).WithInt("group.size", c.group.Size()).WithInt("group.leader", leader.ID)
	defer func() { tracing.EndSpan(span, err) }()

	if err = c.barrier.Wait(ctx); err != nil {
		return fmt.Errorf("group %d: waiting for quorum: %w", c.group.ID, err)
	}
	span.AddEvent("quorum", map[string]int{"ready": c.barrier.Count()})

	handle, err := s.pool.Obtain(ctx, c.group.ID)
	if err != nil {
		return wrap(err, "group %d: obtaining printer", c.group.ID)
	}
	c.handle = handle
	span.AddEvent("granted", map[string]int{"printer.id": handle.PrinterID(), "seq": int(handle.Seq)})
	defer func() {
		// ctx may already be cancelled; the printer must go back regardless
		if leaveErr := s.pool.Leave(context.WithoutCancel(ctx), handle); leaveErr != nil && err == nil {
			err = leaveErr
		}
		span.AddEvent("returned", map[string]int{"printer.id": handle.PrinterID()})
	}()

	for _, id := range c.order {
		if err = s.release(c, id); err != nil {
			return err
		}
		span.AddEvent("released", map[string]int{"student.id": id})
		if id == leader.ID {
			if err = s.wakeups[id].Wait(ctx); err != nil {
				return fmt.Errorf("group %d leader %d: %w", c.group.ID, id, err)
			}
			if err = s.print(ctx, c, leader, prints); err != nil {
				return err
			}
			continue
		}
		select {
		case done := <-c.finished:
			if done != id {
				return model.NewViolation(model.InvariantReleaseOrder, "completion from student %d while %d was released", done, id).
					WithGroup(c.group.ID).WithPrinter(handle.PrinterID()).WithStudent(done)
			}
		case <-ctx.Done():
			return fmt.Errorf("group %d: waiting for student %d: %w", c.group.ID, id, ctx.Err())
		}
	}
	s.publish(event.NewEvent(event.KindGroup, event.NameFinished, c.group.ID).WithGroup(c.group.ID).WithPrinter(handle.PrinterID()))
	return nil
}

// print is a single print turn on the printer held by the student's group.
func (s *Service) print(ctx context.Context, c *cohort, student *model.Student, prints timer.Source) (err error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("print-%d", student.ID), tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	if !c.barrier.Done() {
		return model.NewViolation(model.InvariantQuorum, "printing before every member is ready").
			WithGroup(c.group.ID).WithStudent(student.ID)
	}
	if !s.wakeups[student.ID].Signaled() {
		return model.NewViolation(model.InvariantReleaseOrder, "printing before being released").
			WithGroup(c.group.ID).WithStudent(student.ID)
	}
	if c.handle == nil {
		return model.NewViolation(model.InvariantPrinterOwnership, "group holds no printer").
			WithGroup(c.group.ID).WithStudent(student.ID)
	}
	printerID := c.handle.PrinterID()
	span.WithInt("student.id", student.ID).WithInt("printer.id", printerID)

	if err = s.pool.Use(printerID, c.group.ID, student.ID); err != nil {
		return err
	}
	if err = s.transition(c, student, printerID, model.StudentStatePrinting); err != nil {
		_ = s.pool.Finish(printerID, student.ID)
		return err
	}
	progress.UpdateCtx(ctx, progress.Delta{Printing: 1})
	interval := Interval{StudentID: student.ID, GroupID: c.group.ID, PrinterID: printerID, Start: clock.Now()}

	sleepErr := s.sleep(ctx, prints.Next())
	interval.End = clock.Now()
	progress.UpdateCtx(ctx, progress.Delta{Printing: -1})
	finishErr := s.pool.Finish(printerID, student.ID)
	if sleepErr != nil {
		return fmt.Errorf("student %d: printing on %d: %w", student.ID, printerID, sleepErr)
	}
	if finishErr != nil {
		return finishErr
	}
	s.record(interval)
	if err = s.transition(c, student, printerID, model.StudentStateDone); err != nil {
		return err
	}
	progress.UpdateCtx(ctx, progress.Delta{Done: 1})
	return nil
}

func (s *Service) transition(c *cohort, student *model.Student, printerID int, to model.StudentState) error {
	from, err := student.Transition(to)
	if err != nil {
		return err
	}
	s.publish(event.NewEvent(event.KindStudent, event.NameState, student.ID).
		WithGroup(c.group.ID).WithPrinter(printerID).
		WithTransition(string(from), string(to)))
	return nil
}
