package models

type Exercise struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	MuscleGroup *string `json:"muscle_group"`
	APIID       *string `json:"api_id"`
}

type WorkoutPlan struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type WorkoutPlanExercise struct {
	ID            int64  `json:"id"`
	WorkoutPlanID int64  `json:"workout_plan_id"`
	ExerciseID    int64  `json:"exercise_id"`
	Day           string `json:"day"`
	Sets          int    `json:"sets"`
	Reps          int    `json:"reps"`
}

// WorkoutExercise is the read projection of a plan entry for a day.
type WorkoutExercise struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps int    `json:"reps"`
}

type AddExerciseRequest struct {
	PlanName     string `json:"plan_name" validate:"required,max=100,label"`
	ExerciseName string `json:"exercise_name" validate:"required,max=100,label"`
	Day          string `json:"day" validate:"required,weekday"`
	Sets         any    `json:"sets"`
	Reps         any    `json:"reps"`
}

type UpdateExerciseRequest struct {
	Sets any `json:"sets"`
	Reps any `json:"reps"`
}

// CatalogExercise is an entry of the remote exercise catalog.
type CatalogExercise struct {
	WorkoutID   int64  `json:"workoutID"`
	WorkoutName string `json:"workoutName"`
	MuscleGroup string `json:"muscleGroup"`
	WorkoutDesc string `json:"workoutDesc"`
	VideoURL    string `json:"videoUrl"`
}

// RemotePlan is a plan as returned by the backend.
type RemotePlan struct {
	ID        int64             `json:"id"`
	GoogleID  string            `json:"googleId"`
	Name      string            `json:"name"`
	Day       string            `json:"day"`
	Exercises []WorkoutExercise `json:"exercises,omitempty"`
}

type PlanInput struct {
	GoogleID string `json:"googleId"`
	Name     string `json:"name"`
	Day      string `json:"day"`
}

type PlanExerciseInput struct {
	Name string `json:"name" validate:"required"`
	Sets int    `json:"sets" validate:"gte=1"`
	Reps int    `json:"reps" validate:"gte=1"`
}

type RenamePlanRequest struct {
	Name string `json:"name" validate:"required,max=100,label"`
}
