package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zeecare/hospital-system/internal/core/domain"
)

const appointmentsCollection = "appointments"

// AppointmentRepository persists appointments in MongoDB.
type AppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

type doctorRefDoc struct {
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
}

type appointmentDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	FirstName       string             `bson:"first_name"`
	LastName        string             `bson:"last_name"`
	Email           string             `bson:"email"`
	Phone           string             `bson:"phone"`
	NIC             string             `bson:"nic"`
	DOB             string             `bson:"dob"`
	Gender          string             `bson:"gender"`
	AppointmentDate string             `bson:"appointment_date"`
	Department      string             `bson:"department"`
	Doctor          doctorRefDoc       `bson:"doctor"`
	DoctorID        primitive.ObjectID `bson:"doctor_id,omitempty"`
	PatientID       primitive.ObjectID `bson:"patient_id,omitempty"`
	Address         string             `bson:"address"`
	HasVisited      bool               `bson:"has_visited"`
	Status          string             `bson:"status"`
}

func toAppointmentDoc(a *domain.Appointment) (appointmentDoc, error) {
	doctorID, err := primitive.ObjectIDFromHex(a.DoctorID)
	if err != nil {
		return appointmentDoc{}, domain.ErrInvalidID
	}
	patientID, err := primitive.ObjectIDFromHex(a.PatientID)
	if err != nil {
		return appointmentDoc{}, domain.ErrInvalidID
	}
	return appointmentDoc{
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		Email:           a.Email,
		Phone:           a.Phone,
		NIC:             a.NIC,
		DOB:             a.DOB,
		Gender:          a.Gender,
		AppointmentDate: a.AppointmentDate,
		Department:      a.Department,
		Doctor:          doctorRefDoc{FirstName: a.Doctor.FirstName, LastName: a.Doctor.LastName},
		DoctorID:        doctorID,
		PatientID:       patientID,
		Address:         a.Address,
		HasVisited:      a.HasVisited,
		Status:          string(a.Status),
	}, nil
}

func (d appointmentDoc) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:              d.ID.Hex(),
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Email:           d.Email,
		Phone:           d.Phone,
		NIC:             d.NIC,
		DOB:             d.DOB,
		Gender:          d.Gender,
		AppointmentDate: d.AppointmentDate,
		Department:      d.Department,
		Doctor:          domain.DoctorRef{FirstName: d.Doctor.FirstName, LastName: d.Doctor.LastName},
		DoctorID:        d.DoctorID.Hex(),
		PatientID:       d.PatientID.Hex(),
		Address:         d.Address,
		HasVisited:      d.HasVisited,
		Status:          domain.AppointmentStatus(d.Status),
	}
}

// Create inserts a new appointment.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	doc, err := toAppointmentDoc(a)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	created := *a
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindAll returns every appointment.
func (r *AppointmentRepository) FindAll(ctx context.Context) ([]domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cur.Close(ctx)

	var appointments []domain.Appointment
	for cur.Next(ctx) {
		var doc appointmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		appointments = append(appointments, *doc.toDomain())
	}
	return appointments, cur.Err()
}

// Update applies the status and/or visited flag and returns the updated
// appointment. A malformed id is domain.ErrInvalidID; a missing document is
// domain.ErrAppointmentNotFound.
func (r *AppointmentRepository) Update(ctx context.Context, id string, status domain.AppointmentStatus, hasVisited *bool) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	set := bson.M{}
	if status != "" {
		set["status"] = string(status)
	}
	if hasVisited != nil {
		set["has_visited"] = *hasVisited
	}
	if len(set) == 0 {
		return nil, domain.ErrInvalidStatus
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	after := options.After
	var doc appointmentDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete removes an appointment by id.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}
